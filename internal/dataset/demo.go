package dataset

// Column names of the demo table.
const (
	ColText       = "text"
	ColLargeText  = "large_text"
	ColSelect     = "select"
	ColRichSelect = "rich_select"
	ColInteger    = "integer"
	ColFloats     = "floats"
)

// Languages are the choices offered by the select columns.
var Languages = []string{"Latin", "English"}

var demoLargeText = []string{
	"Lorem ipsum dolor sit amet, consectetuer adipiscing elit. Aenean commodo ligula eget dolor. Aenean massa. Cum sociis natoque penatibus et magnis dis parturient montes, nascetur ridiculus mus. Donec qu",
	"Sed ut perspiciatis unde omnis iste natus error sit voluptatem accusantium doloremque laudantium, totam rem aperiam, eaque ipsa quae ab illo inventore veritatis et quasi architecto beatae vitae dicta",
	"A wonderful serenity has taken possession of my entire soul, like these sweet mornings of spring which I enjoy with my whole heart. I am alone, and feel the charm of existence in this spot, which was",
	"One morning, when Gregor Samsa woke from troubled dreams, he found himself transformed in his bed into a horrible vermin. He lay on his armour-like back, and if he lifted his head a little he could se",
	"The quick, brown fox jumps over a lazy dog. DJs flock by when MTV ax quiz prog. Junk MTV quiz graced by fox whelps. Bawds jog, flick quartz, vex nymphs. Waltz, bad nymph, for quick jigs vex! Fox nymph",
	"Far far away, behind the word mountains, far from the countries Vokalia and Consonantia, there live the blind texts. Separated they live in Bookmarksgrove right at the coast of the Semantics, a large",
}

// Demo returns the six-row sample table.
func Demo() *Dataset {
	d := New([]Column{
		{Name: ColText, Type: TypeText},
		{Name: ColLargeText, Type: TypeText},
		{Name: ColSelect, Type: TypeText},
		{Name: ColRichSelect, Type: TypeText},
		{Name: ColInteger, Type: TypeInteger},
		{Name: ColFloats, Type: TypeFloat},
	})

	text := []string{"Lorem ipsum", "Cicero", "Werther", "Kafka", "Pangram", "Far far away"}
	lang := []string{"Latin", "Latin", "English", "English", "English", "English"}
	ints := []int64{200, 26, 45, 85, 45, 123}
	floats := []float64{12.2, 564.5, 87.54, 321.9, 45.1, 87.9}

	for i := range text {
		// Widths always match the columns above.
		_ = d.AppendRow(text[i], demoLargeText[i], lang[i], lang[i], ints[i], floats[i])
	}
	return d
}
