package keyword

// stopwords are dropped before scoring. The list covers common English
// function words, Japanese particles and auxiliaries, and social-media noise
// that shows up in clipped titles.
var stopwords = []string{
	// English
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as", "at",
	"be", "been", "but", "by", "can", "could", "do", "does", "for", "from", "has",
	"have", "how", "i", "if", "in", "into", "is", "it", "its", "just", "more",
	"my", "new", "not", "of", "on", "or", "our", "out", "so", "than", "that",
	"the", "their", "then", "there", "these", "this", "to", "up", "us", "use",
	"using", "via", "was", "we", "were", "what", "when", "which", "who", "why",
	"will", "with", "you", "your",

	// Japanese
	"これ", "それ", "あれ", "この", "その", "あの", "ここ", "そこ", "こと", "もの",
	"ため", "よう", "さん", "です", "ます", "する", "した", "して", "いる", "ある",
	"なる", "れる", "られる", "から", "まで", "について", "として", "という", "など",
	"ので", "けど", "でも", "また", "系",

	// noise
	"rt", "x", "com", "www", "http", "https",
}
