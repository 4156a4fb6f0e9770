package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/attachment"
	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
)

// ObjectStore writes file bytes under a key and returns their public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key string, content io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadInput is a file attached to an order.
type UploadInput struct {
	FileType model.FileType
	FileName string
	Content  io.Reader
}

// AttachmentUpload is the stored attachment and the read paths it invalidates.
type AttachmentUpload struct {
	Attachment *model.Attachment
	Affected   []model.ReadPath
}

// AttachmentUseCase names, stores and records order attachments.
type AttachmentUseCase struct {
	orders      repository.OrderRepository
	attachments repository.AttachmentRepository
	store       ObjectStore
	recorder    Recorder
	logger      *slog.Logger
	now         func() time.Time
}

// NewAttachmentUseCase constructs AttachmentUseCase.
func NewAttachmentUseCase(
	orders repository.OrderRepository,
	attachments repository.AttachmentRepository,
	store ObjectStore,
	recorder Recorder,
	logger *slog.Logger,
) *AttachmentUseCase {
	return &AttachmentUseCase{
		orders:      orders,
		attachments: attachments,
		store:       store,
		recorder:    recorder,
		logger:      logger,
		now:         time.Now,
	}
}

// Upload stores the file under its smart name. The order status is left unchanged.
func (u *AttachmentUseCase) Upload(ctx context.Context, principal model.Principal, orderID uuid.UUID, in UploadInput) (AttachmentUpload, error) {
	if !in.FileType.Valid() || in.Content == nil {
		return AttachmentUpload{}, domainErrors.ErrInvalidInput
	}

	order, err := u.orders.Get(ctx, principal.CompanyID, orderID)
	if err != nil {
		return AttachmentUpload{}, fmt.Errorf("upload attachment: %w", err)
	}

	name := attachment.BuildName(order.ID.String(), order.ClientName, in.FileType, in.FileName, u.now())
	key := attachment.ObjectKey(order.CompanyID, order.ID, name)
	url, err := u.store.Upload(ctx, key, in.Content)
	if err != nil {
		return AttachmentUpload{}, fmt.Errorf("upload attachment: %w", err)
	}

	stored, err := u.attachments.Create(ctx, model.Attachment{
		OrderID:    order.ID,
		CompanyID:  order.CompanyID,
		FileType:   in.FileType,
		FileName:   name,
		URL:        url,
		UploadedBy: principal.UserID,
	})
	if err != nil {
		u.discard(ctx, key, err)
		return AttachmentUpload{}, fmt.Errorf("upload attachment: %w", err)
	}

	u.recorder.AttachmentUploaded()
	return AttachmentUpload{Attachment: stored, Affected: []model.ReadPath{model.OrderAttachmentsPath(order.ID)}}, nil
}

// discard removes an object whose metadata row could not be written. A failed
// removal is logged with the key so the object can be cleaned up by hand.
func (u *AttachmentUseCase) discard(ctx context.Context, key string, cause error) {
	if err := u.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		u.logger.Error("orphaned attachment object",
			slog.String("key", key),
			slog.String("cause", cause.Error()),
			slog.String("error", err.Error()),
		)
		return
	}
	u.logger.Warn("discarded attachment object after metadata failure",
		slog.String("key", key),
		slog.String("cause", cause.Error()),
	)
}

// List returns the attachments of a tenant order.
func (u *AttachmentUseCase) List(ctx context.Context, companyID, orderID uuid.UUID) ([]model.Attachment, error) {
	return u.attachments.ListByOrder(ctx, companyID, orderID)
}
