package pdf

import "github.com/GME-dev/QUOTATION-GEN/internal/domain/quotation"

type Generator interface {
	Generate(q quotation.Quotation) ([]byte, error)
}
