package parser

import (
	"strings"

	"cashmate/internal/models"
)

// CategoryTriggers pairs an expense category with its trigger substrings.
// Tables are consulted in declaration order; the first entry with a matching
// trigger wins.
type CategoryTriggers struct {
	Category models.Category
	Triggers []string
}

// AccountTriggers pairs a canonical account name with its trigger substrings.
type AccountTriggers struct {
	Account  string
	Triggers []string
}

// PlatformPayment maps a shopping platform to its default payment account.
type PlatformPayment struct {
	Platform string
	Payment  string
}

// Tables holds the keyword tables driving deterministic classification.
// A Tables value is immutable after construction and safe for concurrent
// reads across parse calls.
type Tables struct {
	TransferTriggers   []string
	WithdrawalTriggers []string
	TopUpTriggers      []string
	IncomeTriggers     []string

	// ConnectorTokens are the positional from/to words. They mark transfer
	// phrasing only as whole tokens, so "pake" never matches "ke".
	ConnectorTokens []string

	Categories []CategoryTriggers

	// BankNames are single-word bank identifiers, checked before the
	// generic "bank" keyword.
	BankNames []string

	// AccountWords maps a single token to a canonical account name,
	// used by the transfer resolver.
	AccountWords []AccountTriggers

	// AccountText maps whole-text trigger substrings to an account name,
	// used for regular transactions.
	AccountText []AccountTriggers

	// PlatformPayments and PaymentWords implement the shopping-platform
	// account override.
	PlatformPayments []PlatformPayment
	PaymentWords     []AccountTriggers

	// SkipWords are transfer/action tokens that must never be read as
	// account names.
	SkipWords []string
}

// DefaultTables returns the built-in keyword tables.
func DefaultTables() *Tables {
	return &Tables{
		TransferTriggers: []string{
			"transfer", "pindah", "tarik tunai", "tarik", "ambil", "kirim",
			"topup", "top up", "isi", "isi saldo",
		},
		ConnectorTokens:    []string{"dari", "ke"},
		WithdrawalTriggers: []string{"tarik tunai", "ambil tunai", "tarik", "ambil"},
		TopUpTriggers:      []string{"topup", "top up", "isi", "isi saldo"},
		IncomeTriggers: []string{
			"gaji", "salary", "bonus", "terima", "dapat",
			"penghasilan", "pendapatan", "insentif",
		},
		Categories: []CategoryTriggers{
			{Category: models.CategoryFood, Triggers: []string{
				"makan", "kopi", "nasi", "ayam", "ikan", "daging", "sayur", "buah", "jus", "minum",
				"bakso", "mie", "soto", "rawon", "gulai", "rendang", "gudeg", "pecel", "karedok",
				"dimsum", "pizza", "burger", "kentang", "goreng", "bakar", "kukus", "rebus",
				"roti", "kue", "donat", "martabak", "pancake", "waffle", "es", "soda",
				"lawson", "indomaret", "alfamart", "familymart", "circle k",
				"restoran", "warung", "cafe", "kedai", "kantin", "food court", "foodcourt",
			}},
			{Category: models.CategoryTransport, Triggers: []string{
				"gojek", "grab", "uber", "taxi", "ojek", "angkot", "bus", "kereta", "pesawat",
				"bensin", "pertamax", "pertalite", "solar", "parkir", "tol", "tiket", "terminal",
				"stasiun", "bandara", "transport", "perjalanan", "naik",
			}},
			{Category: models.CategoryShopping, Triggers: []string{
				"beli", "belanja", "shop", "mall", "supermarket", "minimarket", "pasar",
				"toko", "kios", "baju", "celana", "sepatu", "tas", "topi",
				"elektronik", "handphone", "laptop", "charger", "kabel", "baterai",
				"kosmetik", "sabun", "shampoo", "sampo", "parfum", "skincare",
				"shopee", "tokopedia", "bukalapak", "lazada", "blibli", "jd.id", "zalora",
			}},
			{Category: models.CategoryEntertainment, Triggers: []string{
				"nonton", "bioskop", "film", "konser", "musik", "game", "gaming", "main",
				"hiburan", "rekreasi", "liburan", "wisata", "hotel",
				"penginapan", "villa", "resort", "travel", "tour",
			}},
		},
		BankNames: []string{
			"bca", "bri", "bni", "mandiri", "btn", "cimb", "danamon", "mega",
			"permata", "panin", "bukopin", "maybank", "bjb", "bsi",
			"btpn", "jenius", "neo", "seabank", "uob", "ocbc", "dbs", "hsbc",
		},
		AccountWords: []AccountTriggers{
			{Account: "cash", Triggers: []string{"cash", "tunai", "uang"}},
			{Account: "dana", Triggers: []string{"dana"}},
			{Account: "gopay", Triggers: []string{"gopay", "gojek"}},
			{Account: "ovo", Triggers: []string{"ovo"}},
			{Account: "shopee", Triggers: []string{"shopee", "shopeepay"}},
			{Account: "bank", Triggers: []string{"bank", "rekening"}},
		},
		AccountText: []AccountTriggers{
			{Account: "cash", Triggers: []string{"cash", "tunai"}},
			{Account: "bank", Triggers: []string{"bank", "rekening"}},
			{Account: "dana", Triggers: []string{"dana"}},
			{Account: "gopay", Triggers: []string{"gopay"}},
			{Account: "ovo", Triggers: []string{"ovo"}},
			{Account: "shopee", Triggers: []string{"shopee", "shopeepay"}},
			{Account: "kartu kredit", Triggers: []string{"kartu kredit", "credit card", "cc", "visa", "mastercard"}},
		},
		PlatformPayments: []PlatformPayment{
			{Platform: "shopee", Payment: "shopeepay"},
			{Platform: "tokopedia", Payment: models.DefaultAccount},
			{Platform: "bukalapak", Payment: models.DefaultAccount},
			{Platform: "lazada", Payment: models.DefaultAccount},
			{Platform: "blibli", Payment: models.DefaultAccount},
			{Platform: "jd.id", Payment: models.DefaultAccount},
			{Platform: "zalora", Payment: models.DefaultAccount},
		},
		PaymentWords: []AccountTriggers{
			{Account: "shopeepay", Triggers: []string{"shopeepay", "shopee pay"}},
			{Account: "dana", Triggers: []string{"dana"}},
			{Account: "gopay", Triggers: []string{"gopay"}},
			{Account: "ovo", Triggers: []string{"ovo"}},
			{Account: "cash", Triggers: []string{"cash", "tunai", "cod"}},
		},
		SkipWords: []string{
			"transfer", "pindah", "tarik", "ambil", "kirim", "dari", "ke",
			"topup", "top", "up", "isi", "saldo", "tunai",
		},
	}
}

func containsAny(text string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}

// IsTransfer reports whether the lowercased text contains transfer phrasing:
// a trigger substring anywhere, or a from/to connector as a whole token.
func (t *Tables) IsTransfer(text string) bool {
	if containsAny(text, t.TransferTriggers) {
		return true
	}
	for _, word := range strings.Fields(text) {
		for _, connector := range t.ConnectorTokens {
			if word == connector {
				return true
			}
		}
	}
	return false
}

// IsWithdrawal reports whether the lowercased text contains withdrawal phrasing.
func (t *Tables) IsWithdrawal(text string) bool {
	return containsAny(text, t.WithdrawalTriggers)
}

// IsTopUp reports whether the lowercased text contains top-up phrasing.
func (t *Tables) IsTopUp(text string) bool {
	return containsAny(text, t.TopUpTriggers)
}

// IsIncome reports whether the lowercased text contains income phrasing.
func (t *Tables) IsIncome(text string) bool {
	return containsAny(text, t.IncomeTriggers)
}

// DetectCategory classifies the lowercased text into an expense category,
// consulting the tables in declared order. No match yields the catch-all.
func (t *Tables) DetectCategory(text string) models.Category {
	for _, entry := range t.Categories {
		if containsAny(text, entry.Triggers) {
			return entry.Category
		}
	}
	return models.CategoryOther
}

func (t *Tables) isSkipWord(word string) bool {
	for _, skip := range t.SkipWords {
		if word == skip {
			return true
		}
	}
	return false
}

func (t *Tables) isBankName(word string) bool {
	for _, bank := range t.BankNames {
		if word == bank {
			return true
		}
	}
	return false
}

// DetectAccountWord maps a single token to a canonical account name. Named
// banks win over the generic tables; an unknown token is returned as-is so
// custom account names survive, except that a transfer/action keyword always
// resolves to the cash account.
func (t *Tables) DetectAccountWord(word string) string {
	word = strings.ToLower(word)

	if t.isSkipWord(word) {
		return models.DefaultAccount
	}

	if t.isBankName(word) {
		return word
	}

	for _, entry := range t.AccountWords {
		for _, trigger := range entry.Triggers {
			if word == trigger {
				return entry.Account
			}
		}
	}

	// A bare three-letter token usually is a bank code.
	if len(word) == 3 && isAlpha(word) {
		return word
	}

	return word
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return s != ""
}

// DetectAccount resolves the single account of a regular transaction from
// the lowercased text. Named banks are checked first; for shopping
// transactions a known platform implies its payment method unless an
// explicit payment keyword overrides it.
func (t *Tables) DetectAccount(text string, category models.Category) string {
	for _, bank := range t.BankNames {
		if strings.Contains(text, bank) {
			return bank
		}
	}

	if category == models.CategoryShopping {
		for _, pp := range t.PlatformPayments {
			if !strings.Contains(text, pp.Platform) {
				continue
			}
			for _, payment := range t.PaymentWords {
				if containsAny(text, payment.Triggers) {
					return payment.Account
				}
			}
			return pp.Payment
		}
	}

	for _, entry := range t.AccountText {
		if containsAny(text, entry.Triggers) {
			return entry.Account
		}
	}

	return models.DefaultAccount
}

// DetectAccountKind infers the account kind from an account name, used when
// the ledger creates an account implicitly from a parsed transaction.
func DetectAccountKind(name string) models.AccountKind {
	name = strings.ToLower(strings.TrimSpace(name))
	tables := defaultTables

	switch name {
	case "cash", "tunai", "uang", "kas":
		return models.AccountKindCash
	}

	if tables.isBankName(name) || name == "bank" || name == "rekening" {
		return models.AccountKindBank
	}

	switch name {
	case "dana", "gopay", "ovo", "shopee", "shopeepay", "linkaja":
		return models.AccountKindEWallet
	}

	if containsAny(name, []string{"kartu kredit", "credit card", "visa", "mastercard"}) || name == "cc" {
		return models.AccountKindCreditCard
	}

	return models.AccountKindCash
}

var defaultTables = DefaultTables()
