package parser

import (
	"os"
	"strings"

	"cashmate/internal/logging"
)

// fallbackPromptTemplate is used when no prompt file is configured or the
// configured file cannot be read. "{input}" is replaced with the user text.
const fallbackPromptTemplate = `Kamu adalah asisten pencatat keuangan pribadi. Analisis kalimat transaksi
berbahasa Indonesia berikut dan balas HANYA dengan JSON valid, tanpa teks lain.

Kalimat: "{input}"

Untuk pemasukan atau pengeluaran, gunakan format:
{"tipe": "pemasukan" | "pengeluaran", "nominal": <angka>, "akun": "<nama akun>", "kategori": "<kategori>", "catatan": "<deskripsi singkat>"}

Untuk transfer, tarik tunai, atau top up, gunakan format:
{"tipe": "transfer", "nominal": <angka>, "akun_asal": "<akun sumber>", "akun_tujuan": "<akun tujuan>", "catatan": "<deskripsi singkat>"}

Aturan satuan nominal:
- "15k" atau "15rb" berarti 15000
- "1.5jt" berarti 1500000
- angka tanpa satuan dibaca apa adanya

Aturan lain:
- kategori salah satu dari: makanan, transportasi, belanja, hiburan, gaji, lainnya
- akun contohnya: cash, bank, bca, bri, mandiri, dana, gopay, ovo, shopee
- tarik tunai dari bank: akun_asal bank tersebut, akun_tujuan "cash"
- top up e-wallet: akun_asal "cash", akun_tujuan e-wallet tersebut
- nominal harus berupa angka positif, bukan string

Contoh:
- "bakso 15k pake cash" -> {"tipe": "pengeluaran", "nominal": 15000, "akun": "cash", "kategori": "makanan", "catatan": "bakso"}
- "gaji bulan ini 5jt ke bank" -> {"tipe": "pemasukan", "nominal": 5000000, "akun": "bank", "kategori": "gaji", "catatan": "gaji bulan ini"}
- "tarik tunai bri 1jt" -> {"tipe": "transfer", "nominal": 1000000, "akun_asal": "bri", "akun_tujuan": "cash", "catatan": "tarik tunai"}
- "topup gopay 30k" -> {"tipe": "transfer", "nominal": 30000, "akun_asal": "cash", "akun_tujuan": "gopay", "catatan": "topup gopay"}`

// PromptTemplate renders the model prompt for a given user input.
type PromptTemplate struct {
	text string
}

// LoadPromptTemplate reads the template from path, falling back to the
// built-in template when the file is missing or unreadable.
func LoadPromptTemplate(path string, logger logging.Logger) *PromptTemplate {
	if logger == nil {
		logger = logging.GetLogger()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil && strings.TrimSpace(string(data)) != "" {
			logger.WithField("path", path).Debug("Loaded prompt template from file")
			return &PromptTemplate{text: string(data)}
		}
		if err != nil {
			logger.WithError(err).WithField("path", path).Debug("Prompt file not readable, using built-in template")
		}
	}

	return &PromptTemplate{text: fallbackPromptTemplate}
}

// NewPromptTemplate wraps literal template text, mainly for tests.
func NewPromptTemplate(text string) *PromptTemplate {
	return &PromptTemplate{text: text}
}

// Render substitutes the user input into the template.
func (p *PromptTemplate) Render(input string) string {
	return strings.ReplaceAll(p.text, "{input}", input)
}
