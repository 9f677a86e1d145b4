package player

import (
	"math"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type SortColumn string

const (
	SortByName     SortColumn = "name"
	SortByTeamID   SortColumn = "team_id"
	SortByPosition SortColumn = "position"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort is an explicit ordering. A nil *Sort means newest first (id desc).
type Sort struct {
	Column    SortColumn
	Direction SortDirection
}

// FilterSpec is the canonical form of the list query parameters.
type FilterSpec struct {
	TextQuery     string
	TeamID        int64
	HasTeamID     bool
	Position      string
	TeamNameQuery string
	Sort          *Sort
	Page          int
	PageSize      int
}

func (f FilterSpec) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// parameter names per dimension, primary first.
var (
	pageParams          = []string{"page", "pagina"}
	pageSizeParams      = []string{"pageSize", "tamanoPagina"}
	textQueryParams     = []string{"q", "search"}
	teamIDParams        = []string{"team_id", "equipoId"}
	positionParams      = []string{"position", "posicion"}
	teamNameQueryParams = []string{"equipoNombre", "team_name"}
)

var sortAliases = map[string]SortColumn{
	"nombre":   SortByName,
	"equipo":   SortByTeamID,
	"posicion": SortByPosition,
}

// BuildFilterSpec translates raw query parameters into a FilterSpec. It never fails:
// unknown sort keys are ignored and non-numeric values coerce to 0.
func BuildFilterSpec(params map[string]string) FilterSpec {
	var spec FilterSpec

	page, hasPage := presentValue(params, pageParams)
	spec.Page = positiveOr(page, hasPage, DefaultPage)
	pageSize, hasPageSize := presentValue(params, pageSizeParams)
	spec.PageSize = positiveOr(pageSize, hasPageSize, DefaultPageSize)

	spec.TextQuery = firstNonEmpty(params, textQueryParams)
	spec.Position = firstNonEmpty(params, positionParams)
	spec.TeamNameQuery = firstNonEmpty(params, teamNameQueryParams)

	if raw := firstNonEmpty(params, teamIDParams); raw != "" {
		spec.TeamID = CoerceInt(raw)
		spec.HasTeamID = true
	}

	if column, ok := sortAliases[strings.TrimSpace(params["sortBy"])]; ok {
		direction := SortAsc
		if strings.EqualFold(strings.TrimSpace(params["sortDir"]), string(SortDesc)) {
			direction = SortDesc
		}
		spec.Sort = &Sort{Column: column, Direction: direction}
	}

	return spec
}

// presentValue returns the value of the first name present in params, even if blank.
func presentValue(params map[string]string, names []string) (string, bool) {
	for _, name := range names {
		if value, ok := params[name]; ok {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

func firstNonEmpty(params map[string]string, names []string) string {
	for _, name := range names {
		if value := strings.TrimSpace(params[name]); value != "" {
			return value
		}
	}
	return ""
}

func positiveOr(raw string, present bool, fallback int) int {
	if !present {
		return fallback
	}
	value := CoerceInt(raw)
	if value < 1 {
		return 1
	}
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(value)
}

// CoerceInt reads an optional sign followed by leading digits, ignoring leading
// whitespace and anything after the digits. Input without digits yields 0 and
// out of range values saturate.
func CoerceInt(raw string) int64 {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var value int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		digit := int64(c - '0')
		if value > (math.MaxInt64-digit)/10 {
			if negative {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		value = value*10 + digit
	}

	if negative {
		return -value
	}
	return value
}
