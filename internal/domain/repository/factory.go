package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Companies() CompanyRepository
	Users() UserRepository
	Orders() OrderRepository
	Statuses() StatusRepository
	Pricing() PricingRepository
	Currencies() CurrencyRepository
	Attachments() AttachmentRepository
}
