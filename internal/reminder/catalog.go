package reminder

// Catalog is a read-only, ordered, non-empty list of reminder bodies.
type Catalog interface {
	Len() int
	Message(i int) string
}

type sliceCatalog []string

func (c sliceCatalog) Len() int { return len(c) }

func (c sliceCatalog) Message(i int) string { return c[i%len(c)] }

var defaultMessages = []string{
	"Eu sou capaz de grandes coisas.",
	"Hoje será um dia incrível.",
	"Eu mereço tudo de bom.",
	"Minha mente é poderosa e positiva.",
	"Eu escolho a paz e a alegria.",
	"Estou crescendo a cada dia.",
	"Sou grato(a) por tudo que tenho.",
	"Minha energia atrai coisas boas.",
	"Eu confio em mim mesmo(a).",
	"Cada desafio me torna mais forte.",
	"Sou amado(a) e tenho valor.",
	"Hoje me dedico ao meu melhor.",
	"Paz e prosperidade fluem para mim.",
	"Escolho ver o lado positivo.",
	"Sou suficiente exatamente como sou.",
	"Minha jornada é única e especial.",
	"Atraio oportunidades incríveis.",
	"Me cuido com amor e carinho.",
	"Minha vida melhora a cada dia.",
	"Tenho tudo que preciso dentro de mim.",
}

func DefaultCatalog() Catalog {
	return sliceCatalog(defaultMessages)
}

// NewCatalog copies messages into a Catalog, skipping blanks. It falls back
// to the default catalog when nothing is left.
func NewCatalog(messages []string) Catalog {
	out := make(sliceCatalog, 0, len(messages))
	for _, m := range messages {
		if m != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return DefaultCatalog()
	}
	return out
}
