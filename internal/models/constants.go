package models

// Kind is the transaction type as it appears in chat input and on the wire.
type Kind string

const (
	KindIncome   Kind = "pemasukan"
	KindExpense  Kind = "pengeluaran"
	KindTransfer Kind = "transfer"
)

// IsValid reports whether k is one of the three known transaction kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer:
		return true
	}
	return false
}

// Category labels for regular transactions. CategoryOther is the catch-all
// bucket; CategoryTransfer is reserved for transfer records.
type Category string

const (
	CategoryFood          Category = "makanan"
	CategoryTransport     Category = "transportasi"
	CategoryShopping      Category = "belanja"
	CategoryEntertainment Category = "hiburan"
	CategorySalary        Category = "gaji"
	CategoryOther         Category = "lainnya"
	CategoryTransfer      Category = "transfer"
)

// IsValid reports whether c is one of the known category labels.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryShopping,
		CategoryEntertainment, CategorySalary, CategoryOther, CategoryTransfer:
		return true
	}
	return false
}

// AccountKind classifies an account record (cash, bank, e-wallet, credit card).
type AccountKind string

const (
	AccountKindCash       AccountKind = "kas"
	AccountKindBank       AccountKind = "bank"
	AccountKindEWallet    AccountKind = "e-wallet"
	AccountKindCreditCard AccountKind = "kartu kredit"
)

// Canonical defaults applied by the validator when the input text yields nothing.
const (
	DefaultAccount = "cash"
	DefaultNote    = "Transaksi"
)
