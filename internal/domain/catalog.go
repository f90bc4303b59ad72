package domain

import (
	"time"

	"github.com/google/uuid"
)

// Objective is a trackable hiking target.
type Objective struct {
	ID   uuid.UUID
	Name string
	Kind ObjectiveKind
}

// List is a curated set of objectives with a completion variant.
type List struct {
	ID         uuid.UUID
	Name       string
	Variant    ListVariant
	Objectives []Objective // ordered by list position
}

// Roster maps objective names to IDs for exact-name matching.
func (l List) Roster() map[string]uuid.UUID {
	roster := make(map[string]uuid.UUID, len(l.Objectives))
	for _, o := range l.Objectives {
		roster[o.Name] = o.ID
	}
	return roster
}

// HasObjective reports whether the list contains the objective.
func (l List) HasObjective(id uuid.UUID) bool {
	for _, o := range l.Objectives {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Ascent is one recorded ascent of an objective by a user.
type Ascent struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ObjectiveID uuid.UUID
	Date        Date
	Source      AscentSource
	CreatedAt   time.Time
}
