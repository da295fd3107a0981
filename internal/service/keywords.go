package service

import "strings"

// keywordTopic is one high-stakes topic with its trigger keywords and fixed
// answer. Keyword matches bypass both the knowledge index and the
// classifier with a fixed 0.95 confidence.
type keywordTopic struct {
	Topic    string
	Keywords []string
	Answer   string
}

// keywordConfidence is reported for keyword-override replies.
const keywordConfidence = 0.95

// keywordTopics is scanned in declaration order; the first topic with a
// matching keyword wins.
var keywordTopics = []keywordTopic{
	{
		Topic:    "staj",
		Keywords: []string{"staj mı", "staj mi", "staj değil", "staj mıdır", "staj midir", "bu staj"},
		Answer: "Bu program bir staj DEĞİLDİR.\n\n" +
			"İşletmede Mesleki Eğitim, son dönemde alınan zorunlu bir derstir. " +
			"Öğrenci haftanın 5 günü işletmede çalışır ve %90 devam zorunluluğu vardır. " +
			"Stajdan farklı olarak; ders notu verilir, devamsızlık takibi yapılır " +
			"ve başarısızlık durumunda ders tekrar alınır.\n\n" +
			"Kaynak: İşletmede Mesleki Eğitim sunumu",
	},
	{
		Topic:    "devamsızlık",
		Keywords: []string{"devamsızlık", "devamsizlik", "devam zorunluluğu", "devam zorunlulugu", "devamsızlık sınırı", "gelmezse", "katılım zorunlu"},
		Answer: "Devam Zorunluluğu:\n\n" +
			"• Öğrencinin toplam eğitim süresinin en az %90'ına katılması zorunludur.\n" +
			"• Mazeretsiz ardışık 3 gün devamsızlık yapan öğrenci başarısız sayılır.\n" +
			"• İzin/mazeret süresi toplam eğitim süresinin %10'unu geçemez.\n" +
			"• Devamsızlık durumunda işletme sorumlusu ve koordinatör bilgilendirilmelidir.\n\n" +
			"Kaynak: İşletmede Mesleki Eğitim sunumu",
	},
	{
		Topic:    "puantaj",
		Keywords: []string{"puantaj", "puantaj formu", "puantaj ne zaman"},
		Answer: "Puantaj Formu:\n\n" +
			"• Her ayın 1-7'si arasında bir önceki aya ait puantaj formu teslim edilmelidir.\n" +
			"• Form, işletme yetkilisi tarafından onaylanmış olmalıdır.\n" +
			"• Puantaj formunda günlük çalışma saatleri ve devam durumu yer alır.\n" +
			"• Geç teslim edilen formlar değerlendirmeye alınmayabilir.\n\n" +
			"Kaynak: İşletmede Mesleki Eğitim sunumu",
	},
	{
		Topic:    "ara_rapor",
		Keywords: []string{"ara rapor", "ara raporu"},
		Answer: "Ara Rapor:\n\n" +
			"• Eğitim süresinin ortasında (genellikle 6-8. hafta) ara rapor teslim edilir.\n" +
			"• Raporda yapılan işler, öğrenilen beceriler ve gözlemler yer almalıdır.\n" +
			"• İşletme danışmanı ve akademik danışman tarafından değerlendirilir.\n" +
			"• Zamanında teslim edilmemesi not kırılmasına neden olabilir.\n\n" +
			"Kaynak: İşletmede Mesleki Eğitim sunumu",
	},
	{
		Topic:    "uygulama_raporu",
		Keywords: []string{"uygulama raporu", "uygulama rapor"},
		Answer: "Uygulama Raporu:\n\n" +
			"• Eğitim sonunda hazırlanan kapsamlı bir değerlendirme raporudur.\n" +
			"• İşletmede yapılan tüm faaliyetler, kazanılan yetkinlikler ve " +
			"öz değerlendirme bölümlerini içermelidir.\n" +
			"• Son teslim tarihine uyulmalıdır – geç teslim kabul edilmez.\n" +
			"• Hem işletme danışmanı hem akademik danışman onayı gereklidir.\n\n" +
			"Kaynak: İşletmede Mesleki Eğitim sunumu",
	},
}

// detectTopic returns the first keyword topic whose keyword occurs in the
// lower-cased text, or nil.
func detectTopic(text string) *keywordTopic {
	lower := strings.ToLower(text)
	for i := range keywordTopics {
		for _, kw := range keywordTopics[i].Keywords {
			if strings.Contains(lower, kw) {
				return &keywordTopics[i]
			}
		}
	}
	return nil
}
