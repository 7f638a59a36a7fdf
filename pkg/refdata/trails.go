// Package refdata holds the static sector and trail reference table for the
// Mont-Orford domain. Trail lists are derived synchronously from this table,
// there is no asynchronous population step.
package refdata

type Sector struct {
	ID     string
	Name   string
	Trails []string
}

var sectors = []Sector{
	{
		ID:   "mont-orford",
		Name: "Mont-Orford",
		Trails: []string{
			"Trois Ruisseaux", "Grande Coulée", "Inter", "Maxi", "4 KM",
			"Escapade", "Boisée", "Balade", "Connection", "Passe-Partout",
			"Belette", "L'Initiation", "Mini-Passe", "Super Bas", "Contour",
			"L'Intrépide", "Passe de l'Ours", "Chevreuil", "Porc-Épic",
			"Passe à Liguori", "Petit Canyon", "L'Orignal", "L'Écureuil",
			"Arcade", "L'Entre-Deux", "Diversion", "Rochers Jumeaux",
			"Express", "Passe", "Parc familial",
		},
	},
	{
		ID:   "giroux-nord",
		Name: "Mont Giroux Nord",
		Trails: []string{
			"Magog", "Familiale", "Jean-d'Avignon", "Pente Douce", "Magnum",
			"Parc principal", "Parc Découverte", "La 45", "Mitaine",
			"La Passe 45", "Forêt magique", "Accès", "L'Alternative",
			"Petite Coulée", "Gagnon", "Bowen", "Lièvre", "Adams",
		},
	},
	{
		ID:   "giroux-est",
		Name: "Mont Giroux Est",
		Trails: []string{
			"Sherbrooke", "Slalom", "Passe Montagne", "Labrecque", "Lacroix",
			"Dubreuil", "Boogie", "Sasquatch", "Nicolas Fontaine",
			"Lloyd Langlois",
		},
	},
	{
		ID:   "alfred-desrochers",
		Name: "Mont Alfred-DesRochers",
		Trails: []string{
			"Petite Ours", "Descente", "Le Lien", "Ookpic", "Grande-Allée",
			"Cascade", "Toussiski",
		},
	},
	{
		ID:   "remontees",
		Name: "Remontées mécaniques",
		Trails: []string{
			"Rapido", "Télécabine hybride", "Alfred-Desrochers",
			"Quad Giroux Nord", "Tapis Giroux Nord 1", "Tapis Giroux Nord 2",
			"Quad Giroux Est",
		},
	},
	{
		ID:   "randonnee-alpine",
		Name: "Randonnée alpine",
		Trails: []string{
			"Le Chevreuil", "La Tourterelle", "Le Grand-Duc", "La Crête",
			"Le Lynx", "Le Campagnol", "L'Hermine", "L'Alouette", "L'Urubu",
			"La Carcajou", "La Mille-Pattes",
		},
	},
}

var sectorsByID = func() map[string]Sector {
	m := make(map[string]Sector, len(sectors))
	for _, s := range sectors {
		m[s.ID] = s
	}
	return m
}()

// AllSectors returns the sectors in their reference order.
func AllSectors() []Sector {
	return sectors
}

func IsValidSector(sectorID string) bool {
	_, ok := sectorsByID[sectorID]
	return ok
}

// TrailsForSector returns the trail names of a sector, or nil for an unknown
// sector id.
func TrailsForSector(sectorID string) []string {
	s, ok := sectorsByID[sectorID]
	if !ok {
		return nil
	}
	return s.Trails
}

// IsValidTrail reports whether the trail belongs to the given sector.
func IsValidTrail(sectorID string, trail string) bool {
	for _, t := range TrailsForSector(sectorID) {
		if t == trail {
			return true
		}
	}
	return false
}

func SectorName(sectorID string) string {
	s, ok := sectorsByID[sectorID]
	if !ok {
		return ""
	}
	return s.Name
}

// FormatLocation renders "<sector> - <trail>" with an off-piste suffix.
func FormatLocation(sectorID string, trail string, offPiste bool) string {
	location := SectorName(sectorID)
	if trail != "" {
		location += " - " + trail
	}
	if offPiste {
		location += " (Hors-piste)"
	}
	return location
}
