package source

import "github.com/andresuchdata/salesboard/internal/sheet"

const sampleCSV = `Tip,Isim,HEDEF,TAHMİNİ KAPANIŞ,TOPLAM,%,OCAK,ŞUBAT,MART,NİSAN,MAYIS,HAZİRAN,TEMMUZ,AĞUSTOS,EYLÜL,EKİM,KASIM,ARALIK
Marka,Marka A,100000,120000,95000,95,8000,7500,9000,8500,10000,9500,11000,10500,9000,8500,8000,7500
Marka,Marka B,80000,90000,78000,"97,5",6500,6000,7000,6800,7500,7200,8000,7800,7000,6500,6000,5500
`

// SampleRows returns the built-in fallback dataset: two brand rows.
func SampleRows() []sheet.RawRow {
	return sheet.Parse(sampleCSV)
}
