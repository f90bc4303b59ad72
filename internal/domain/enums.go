package domain

// ListVariant is the completion rule-set of a list.
type ListVariant string

const (
	ListVariantStandard   ListVariant = "STANDARD"
	ListVariantWinter     ListVariant = "WINTER"
	ListVariantFourSeason ListVariant = "FOUR_SEASON"
	ListVariantGrid       ListVariant = "GRID"
)

// ListVariants lists every variant in declaration order.
var ListVariants = []ListVariant{
	ListVariantStandard,
	ListVariantWinter,
	ListVariantFourSeason,
	ListVariantGrid,
}

func (v ListVariant) String() string { return string(v) }

func (v ListVariant) IsValid() bool {
	switch v {
	case ListVariantStandard, ListVariantWinter, ListVariantFourSeason, ListVariantGrid:
		return true
	}
	return false
}

// SlotCount returns how many completion slots one objective has under the variant.
// Unknown variants have no slots.
func (v ListVariant) SlotCount() int {
	switch v {
	case ListVariantStandard, ListVariantWinter:
		return 1
	case ListVariantFourSeason:
		return 4
	case ListVariantGrid:
		return 12
	}
	return 0
}

// Season is a meteorological season.
type Season string

const (
	SeasonWinter Season = "WINTER"
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonFall   Season = "FALL"
)

// Seasons lists the four seasons in calendar order starting from winter.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

func (s Season) String() string { return string(s) }

func (s Season) IsValid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall:
		return true
	}
	return false
}

// ObjectiveKind is the kind of hiking target an objective represents.
type ObjectiveKind string

const (
	ObjectiveKindMountain ObjectiveKind = "MOUNTAIN"
	ObjectiveKindTrail    ObjectiveKind = "TRAIL"
	ObjectiveKindCampsite ObjectiveKind = "CAMPSITE"
)

func (k ObjectiveKind) String() string { return string(k) }

func (k ObjectiveKind) IsValid() bool {
	switch k {
	case ObjectiveKindMountain, ObjectiveKindTrail, ObjectiveKindCampsite:
		return true
	}
	return false
}

// AscentSource records how an ascent entered the system.
type AscentSource string

const (
	AscentSourceManual AscentSource = "MANUAL"
	AscentSourceImport AscentSource = "IMPORT"
)

func (s AscentSource) String() string { return string(s) }

func (s AscentSource) IsValid() bool {
	switch s {
	case AscentSourceManual, AscentSourceImport:
		return true
	}
	return false
}
