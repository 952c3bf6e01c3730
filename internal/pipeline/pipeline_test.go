package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/sheet"
)

func row(headers []string, values ...string) sheet.RawRow {
	return sheet.NewRawRow(headers, values)
}

func TestResolveValue(t *testing.T) {
	tests := []struct {
		name       string
		row        sheet.RawRow
		candidates []string
		want       string
		found      bool
	}{
		{
			name:       "exact match in candidate order",
			row:        row([]string{"tip", "Tip"}, "a", "b"),
			candidates: []string{"Tip", "tip"},
			want:       "b",
			found:      true,
		},
		{
			name:       "case and diacritic insensitive",
			row:        row([]string{"İSİM"}, "Kola"),
			candidates: []string{"isim"},
			want:       "Kola",
			found:      true,
		},
		{
			name:       "dotless capital",
			row:        row([]string{"ISIM"}, "Kola"),
			candidates: []string{"İsim"},
			want:       "Kola",
			found:      true,
		},
		{
			name:       "exact pass wins over earlier fuzzy column",
			row:        row([]string{"TOPLAM", "Toplam"}, "1", "2"),
			candidates: []string{"Toplam"},
			want:       "2",
			found:      true,
		},
		{
			name:       "fuzzy pass follows column order",
			row:        row([]string{"toplam satış", "TOPLAM"}, "7", "8"),
			candidates: []string{"Toplam Satis", "toplam"},
			want:       "7",
			found:      true,
		},
		{
			name:       "empty values are skipped",
			row:        row([]string{"Tip", "TİP"}, "", "Marka"),
			candidates: []string{"Tip"},
			want:       "Marka",
			found:      true,
		},
		{
			name:       "blank earlier candidate falls through to a later one",
			row:        row([]string{"Tip", "Tür"}, "", "Kanal"),
			candidates: TypeHeaders,
			want:       "Kanal",
			found:      true,
		},
		{
			name:       "present but empty everywhere",
			row:        row([]string{"Tip", "Isim"}, "", "Kola"),
			candidates: []string{"Tip"},
		},
		{
			name:       "absent",
			row:        row([]string{"Isim"}, "Kola"),
			candidates: []string{"Hedef"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveValue(tt.row, tt.candidates)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveValue_UpperDottedMatchesLower(t *testing.T) {
	a, okA := ResolveValue(row([]string{"İSİM"}, "X"), []string{"isim"})
	b, okB := ResolveValue(row([]string{"isim"}, "X"), []string{"isim"})
	assert.Equal(t, okB, okA)
	assert.Equal(t, b, a)
}

func TestCanonicalize_EndToEnd(t *testing.T) {
	raw := "Tip,Isim,TOPLAM,OCAK,ŞUBAT\nÜrün,Elma Suyu,\"1.500,00\",\"500\",\"300\"\n"

	ds, stats := Process(raw)
	products := ds.Collection(domain.EntityProduct)
	require.Contains(t, products, "Elma Suyu")

	rec := products["Elma Suyu"]
	assert.Equal(t, 500.0, rec.MonthlySeries.Get(0))
	assert.Equal(t, 300.0, rec.MonthlySeries.Get(1))
	assert.Equal(t, 800.0, rec.TotalUnits)
	assert.Equal(t, 1500.0, rec.TotalAmount)
	assert.Equal(t, "Ürün", rec.EntityTypeTag)

	assert.Empty(t, ds.Collection(domain.EntityBrand))
	assert.Equal(t, 1, stats.Rows)
	assert.Equal(t, 1, stats.Canonical)
	assert.Equal(t, 0, stats.Unclassified)
}

func TestCanonicalize_ResolvedFields(t *testing.T) {
	headers := []string{"Marka", "Tür", "Hedef Satış", "Tahmini Kapanis", "Yüzde", "SKT", "Mart"}
	rec, ok := Canonicalize(row(headers, " Kola ", "Marka", "100.000", "120.000", "97,5", " 01.01.2020 ", "10"))
	require.True(t, ok)

	assert.Equal(t, "Kola", rec.Name)
	assert.Equal(t, "Marka", rec.EntityTypeTag)
	assert.Equal(t, 100000.0, rec.Target)
	assert.Equal(t, 120000.0, rec.ForecastClose)
	assert.Equal(t, 97.5, rec.Percent)
	assert.Equal(t, "01.01.2020", rec.ExpiryDate)
	assert.Equal(t, 10.0, rec.TotalUnits)
}

func TestCanonicalize_HeaderResolvedTypeAndName(t *testing.T) {
	headers := []string{"Kod", "TİP", "İsim", "OCAK"}
	rec, ok := Canonicalize(row(headers, "K-1", "Kategori", "İçecek", "4"))
	require.True(t, ok)
	assert.Equal(t, "Kategori", rec.EntityTypeTag)
	assert.Equal(t, "İçecek", rec.Name)
}

func TestCanonicalize_NameFallsBackToFirstColumn(t *testing.T) {
	rec, ok := Canonicalize(row([]string{"Ad", "Tip Kodu", "OCAK"}, "Ayran", "Ürün", "3"))
	require.True(t, ok)
	assert.Equal(t, "Ayran", rec.Name)
	assert.Equal(t, "", rec.EntityTypeTag)
}

func TestCanonicalize_RejectsEmptyName(t *testing.T) {
	_, ok := Canonicalize(row([]string{"Tip", "Isim", "OCAK"}, "Ürün", "   ", "5"))
	assert.False(t, ok)

	_, ok = Canonicalize(row([]string{"Tip"}, "Ürün"))
	assert.False(t, ok)
}

func TestCanonicalize_MonthFirstWriteWins(t *testing.T) {
	headers := []string{"Tip", "Isim", "OCAK", "Ocak", "ŞUBAT", "subat"}
	rec, ok := Canonicalize(row(headers, "Marka", "A", "100", "900", "", "40"))
	require.True(t, ok)

	assert.Equal(t, 100.0, rec.MonthlySeries.Get(0), "first non-zero month value is kept, never summed")
	assert.Equal(t, 40.0, rec.MonthlySeries.Get(1), "a zero slot is filled by a later column")
	assert.Equal(t, 140.0, rec.TotalUnits)
}

func TestCanonicalize_TotalUnitsIgnoresToplam(t *testing.T) {
	headers := []string{"Tip", "Isim", "TOPLAM", "NİSAN", "Aralık", "MAYIS"}
	rec, ok := Canonicalize(row(headers, "Marka", "A", "99.999", "1.000", "2,5", "abc"))
	require.True(t, ok)

	assert.Equal(t, 99999.0, rec.TotalAmount)
	assert.Equal(t, 1000.0, rec.MonthlySeries.Get(3))
	assert.Equal(t, 2.5, rec.MonthlySeries.Get(11))
	assert.Equal(t, 0.0, rec.MonthlySeries.Get(4))
	assert.Equal(t, rec.MonthlySeries.Total(), rec.TotalUnits)
	assert.Equal(t, 1002.5, rec.TotalUnits)
}

func TestGroupByType_LastWriteWins(t *testing.T) {
	records := []domain.CanonicalRecord{
		{Name: "A", EntityTypeTag: "Marka", TotalUnits: 1},
		{Name: "A", EntityTypeTag: "MARKA", TotalUnits: 2},
		{Name: "B", EntityTypeTag: "Ürün", TotalUnits: 3},
	}

	brands := GroupByType(records, domain.EntityBrand)
	require.Len(t, brands, 1)
	assert.Equal(t, 2.0, brands["A"].TotalUnits, "later record replaces earlier one wholesale")
}

func TestGroupByType_Partition(t *testing.T) {
	records := []domain.CanonicalRecord{
		{Name: "Elma", EntityTypeTag: "Ürün"},
		{Name: "Armut", EntityTypeTag: "Product"},
		{Name: "Kola", EntityTypeTag: "Marka"},
		{Name: "İçecek", EntityTypeTag: "Kategori"},
		{Name: "Ahmet", EntityTypeTag: "Musteri"},
		{Name: "Online", EntityTypeTag: "Satış Kanalı"},
		{Name: "Depo", EntityTypeTag: "Depo"},
	}

	assert.NotContains(t, GroupByType(records, domain.EntityBrand), "Elma")
	assert.Equal(t, []string{"Armut", "Elma"}, GroupByType(records, domain.EntityProduct).Names())
	assert.Equal(t, []string{"Kola"}, GroupByType(records, domain.EntityBrand).Names())
	assert.Equal(t, []string{"İçecek"}, GroupByType(records, domain.EntityCategory).Names())
	assert.Equal(t, []string{"Ahmet"}, GroupByType(records, domain.EntityCustomer).Names())
	assert.Equal(t, []string{"Online"}, GroupByType(records, domain.EntityChannel).Names())

	total := 0
	for _, et := range domain.EntityTypes() {
		total += len(GroupByType(records, et))
	}
	assert.Equal(t, 6, total, "untagged records are in no collection")
}

func TestRun_Idempotent(t *testing.T) {
	raw := "Tip,Isim,OCAK,ŞUBAT,MART\n" +
		"Marka,Kola,\"1.250,5\",10,\n" +
		"Ürün,Ayran,3,4,5\n" +
		",boş,1,1,1\n" +
		"Depo,Merkez,1,2,3\n"

	first, stats := Process(raw)
	second, _ := Process(raw)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, first.RowCount)
	assert.Equal(t, 0, first.DroppedRows)
	assert.Len(t, first.Records, 3)
	assert.Equal(t, 1, stats.Unclassified)
	assert.Equal(t, 1260.5, first.Collection(domain.EntityBrand)["Kola"].TotalUnits)
}

func TestLookupMonth(t *testing.T) {
	for i, name := range []string{"OCAK", "şubat", "MART", "NİSAN", "Mayis", "HAZIRAN", "temmuz", "AGUSTOS", "Eylül", "EKİM", "kasım", "ARALIK"} {
		m, ok := LookupMonth(name)
		require.True(t, ok, name)
		assert.Equal(t, domain.Month(i), m, name)
	}
	_, ok := LookupMonth("TOPLAM")
	assert.False(t, ok)
}

func TestProcess_StrayQuoteDoesNotSwallowRows(t *testing.T) {
	ds, stats := Process("Tip,Isim,OCAK\nMarka,\"Kola,5\nMarka,Pepsi,7\nMarka,Fanta,9\n")

	assert.Equal(t, 3, stats.Rows)
	brands := ds.Collection(domain.EntityBrand)
	assert.Equal(t, []string{"Fanta", "Kola,5", "Pepsi"}, brands.Names())
	assert.Equal(t, 7.0, brands["Pepsi"].TotalUnits)
}

func TestProcess_LeadingBlankLine(t *testing.T) {
	ds, _ := Process("   \nTip,Isim,OCAK\nMarka,Kola,5\n")

	brands := ds.Collection(domain.EntityBrand)
	require.Contains(t, brands, "Kola")
	assert.Equal(t, 5.0, brands["Kola"].MonthlySeries.Get(0))
}

func TestProcess_QuotedCommaInsideName(t *testing.T) {
	ds, _ := Process("Tip,Isim,OCAK\nMarka,Kola \"Zero, Light\",5\n")

	brands := ds.Collection(domain.EntityBrand)
	require.Contains(t, brands, "Kola Zero, Light")
	assert.Equal(t, 5.0, brands["Kola Zero, Light"].TotalUnits)
}
