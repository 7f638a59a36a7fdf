package console

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
)

type SortBy string

const (
	// SortByOffenceDesc is the default listing order, newest offence first.
	SortByOffenceDesc SortBy = "offence-desc"
	// SortByOffenderName orders by offender name ascending with French
	// collation, so accented letters sort by their base letter.
	SortByOffenderName SortBy = "offender-name"
)

func ParseSortBy(value string) SortBy {
	if SortBy(value) == SortByOffenderName {
		return SortByOffenderName
	}
	return SortByOffenceDesc
}

var frenchCollator = collate.New(language.French, collate.IgnoreCase)

// reorder applies the secondary sort to a fetched page. The store only
// orders by creation timestamp, so the offence-timestamp and name orders are
// applied here after the fetch.
func reorder(infractions []infractionTypes.Infraction, sortBy SortBy) {
	switch sortBy {
	case SortByOffenderName:
		sort.SliceStable(infractions, func(i, j int) bool {
			return frenchCollator.CompareString(infractions[i].OffenderName, infractions[j].OffenderName) < 0
		})
	default:
		sort.SliceStable(infractions, func(i, j int) bool {
			return infractions[i].OffenceTimestamp.After(infractions[j].OffenceTimestamp)
		})
	}
}
