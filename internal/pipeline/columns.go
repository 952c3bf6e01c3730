package pipeline

import (
	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/locale"
)

// Accepted header spellings per canonical field, tried in order.
var (
	TypeHeaders = []string{
		"Tip", "tip", "TIP", "Tür", "tür", "TÜR",
		"Type", "type", "TYPE", "Kategori Tipi",
		"Müşteri/Marka/Kategori/Kanal",
	}
	NameHeaders = []string{
		"Isim", "İsim", "isim", "Name", "name",
		"Müşteri", "Marka", "Kategori", "Kanal",
	}
	TotalHeaders    = []string{"TOPLAM", "Toplam", "toplam", "TOPLAM SATIŞ", "Toplam Satış"}
	TargetHeaders   = []string{"HEDEF", "Hedef", "hedef", "HEDEF SATIŞ", "Hedef Satış"}
	ForecastHeaders = []string{"TAHMİNİ KAPANIŞ", "Tahmini Kapanış", "tahmini kapanış", "Tahmini Kapanis"}
	PercentHeaders  = []string{"%", "Yüzde", "yüzde", "Yuzde", "yuzde", "YÜZDE", "YÜZDE ORANI"}
	ExpiryHeaders   = []string{
		"SKT", "Skt", "skt", "Son Kullanma Tarihi", "SON KULLANMA TARİHİ",
		"Expiry", "Expiry Date",
	}
)

// typeColumnMarkers identify a leading column that carries the type tag.
var typeColumnMarkers = []string{"tip", "tur", "type"}

// MonthColumn lists the literal header spellings of one canonical month.
type MonthColumn struct {
	Month    domain.Month
	Variants []string
}

var MonthColumns = []MonthColumn{
	{0, []string{"OCAK", "Ocak"}},
	{1, []string{"ŞUBAT", "Şubat"}},
	{2, []string{"MART", "Mart"}},
	{3, []string{"NİSAN", "Nisan"}},
	{4, []string{"MAYIS", "Mayıs"}},
	{5, []string{"HAZİRAN", "Haziran"}},
	{6, []string{"TEMMUZ", "Temmuz"}},
	{7, []string{"AĞUSTOS", "Ağustos"}},
	{8, []string{"EYLÜL", "Eylül"}},
	{9, []string{"EKİM", "Ekim"}},
	{10, []string{"KASIM", "Kasım"}},
	{11, []string{"ARALIK", "Aralık"}},
}

// monthIndex maps a normalized month spelling to its month.
var monthIndex = func() map[string]domain.Month {
	out := make(map[string]domain.Month, domain.MonthCount)
	for i, name := range domain.MonthNames() {
		out[locale.Normalize(name)] = domain.Month(i)
	}
	return out
}()

// LookupMonth resolves a header to a canonical month, ignoring case and diacritics.
func LookupMonth(header string) (domain.Month, bool) {
	m, ok := monthIndex[locale.Normalize(header)]
	return m, ok
}
