package memory

// Set agrupa todos los repositorios en memoria sobre un mismo Store.
type Set struct {
	Store             *Store
	Currencies        *CurrencyRepo
	DocumentTypes     *DocumentTypeRepo
	PaymentTypes      *PaymentTypeRepo
	States            *StateRepo
	Providers         *ProviderRepo
	Societies         *SocietyRepo
	UserSocieties     *UserSocietyRepo
	Documents         *DocumentRepo
	Attachments       *AttachmentRepo
	Notes             *NoteRepo
	PurchaseOrders    *PurchaseOrderRepo
	SapAccounts       *SapAccountRepo
	SapPurchaseOrders *SapPurchaseOrderRepo
	UnitOfWork        *UnitOfWork
}

// NewSet crea un Store vacío con todos sus repositorios.
func NewSet() *Set {
	s := NewStore()
	return &Set{
		Store:             s,
		Currencies:        NewCurrencyRepository(s),
		DocumentTypes:     NewDocumentTypeRepository(s),
		PaymentTypes:      NewPaymentTypeRepository(s),
		States:            NewStateRepository(s),
		Providers:         NewProviderRepository(s),
		Societies:         NewSocietyRepository(s),
		UserSocieties:     NewUserSocietyRepository(s),
		Documents:         NewDocumentRepository(s),
		Attachments:       NewAttachmentRepository(s),
		Notes:             NewNoteRepository(s),
		PurchaseOrders:    NewPurchaseOrderRepository(s),
		SapAccounts:       NewSapAccountRepository(s),
		SapPurchaseOrders: NewSapPurchaseOrderRepository(s),
		UnitOfWork:        NewUnitOfWork(s),
	}
}
