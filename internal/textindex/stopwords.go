package textindex

// TurkishStopWords is the stop-word list used for the knowledge corpus:
// common particles, pronouns, and suffix-like clitics that carry no
// retrieval signal.
var TurkishStopWords = []string{
	"bir", "ve", "bu", "da", "de", "ile", "için", "ama", "ancak",
	"veya", "ya", "hem", "ne", "kadar", "gibi", "daha", "en",
	"çok", "her", "bazı", "tüm", "bütün", "olan", "olarak",
	"var", "yok", "ben", "sen", "biz", "siz", "onlar",
	"mi", "mı", "mu", "mü", "dir", "dır", "dur", "dür",
	"den", "dan", "ten", "tan", "nin", "nın", "nun", "nün",
	"ın", "in", "un", "ün", "ler", "lar", "leri", "ları",
}
