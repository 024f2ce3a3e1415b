// Package search filtra e pagina em memória uma lista de vagas já buscada.
//
// As facetas são combinadas com AND: título e local por substring sem
// diferenciar maiúsculas, categorias e locais selecionados por igualdade
// (OR dentro de cada conjunto; conjunto vazio não filtra). O resultado sai
// na ordem inversa da busca (mais recente primeiro) e é paginado de 6 em 6.
package search

import (
	"strings"

	"github.com/Werneck0live/job-portal/internal/models"
)

const PageSize = 6

type Facets struct {
	Title      string   `json:"title"`
	Location   string   `json:"location"`
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

// Active informa se algum filtro está valendo.
func (f Facets) Active() bool {
	return strings.TrimSpace(f.Title) != "" || strings.TrimSpace(f.Location) != "" ||
		len(f.Categories) > 0 || len(f.Locations) > 0
}

// Fields são os campos de um item que as facetas olham.
type Fields struct {
	Title    string
	Location string
	Category string
}

func JobFields(j models.Job) Fields {
	return Fields{Title: j.Title, Location: j.Location, Category: j.Category}
}

func ListingFields(j models.JobWithCompany) Fields { return JobFields(j.Job) }

func containsFold(field, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}

func inSet(v string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (f Facets) Match(x Fields) bool {
	return inSet(x.Category, f.Categories) &&
		inSet(x.Location, f.Locations) &&
		containsFold(x.Title, f.Title) &&
		containsFold(x.Location, f.Location)
}

// Filter devolve os itens que casam com f, do último buscado para o primeiro.
func Filter[T any](items []T, f Facets, fields func(T) Fields) []T {
	out := make([]T, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		if f.Match(fields(items[i])) {
			out = append(out, items[i])
		}
	}
	return out
}

func PageCount(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate devolve a página (1-based). Páginas fora do intervalo vêm vazias;
// page < 1 é tratada como 1.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// Related lista outras vagas da mesma empresa que o usuário ainda não
// aplicou, na ordem da busca, até limit itens.
func Related(jobs []models.Job, current models.Job, applied map[string]bool, limit int) []models.Job {
	out := []models.Job{}
	for _, j := range jobs {
		if len(out) == limit {
			break
		}
		if j.CompanyID != current.CompanyID || j.ID == current.ID || applied[j.ID] {
			continue
		}
		out = append(out, j)
	}
	return out
}
