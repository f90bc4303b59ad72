package seeder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

// catalogNamespace derives stable IDs from names so that reseeding updates
// rows instead of duplicating them.
var catalogNamespace = uuid.MustParse("5b0f3c6e-8f2d-4c1a-9e57-2d8a4b6c1f90")

// ObjectiveID returns the seeded ID of the objective called name.
func ObjectiveID(name string) uuid.UUID {
	return uuid.NewSHA1(catalogNamespace, []byte("objective/"+name))
}

// ListID returns the seeded ID of the list called name.
func ListID(name string) uuid.UUID {
	return uuid.NewSHA1(catalogNamespace, []byte("list/"+name))
}

type catalogFile struct {
	Objectives []objectiveEntry `yaml:"objectives"`
	Lists      []listEntry      `yaml:"lists"`
}

type objectiveEntry struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type listEntry struct {
	Name       string   `yaml:"name"`
	Variant    string   `yaml:"variant"`
	Objectives []string `yaml:"objectives"`
}

// Catalog is a validated catalog ready to be written.
type Catalog struct {
	Objectives []domain.Objective
	Lists      []domain.List
}

// LoadCatalog opens and parses a catalog YAML file.
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// ParseCatalog decodes and validates a catalog. Objective kind defaults to
// MOUNTAIN. Every list member must name an objective declared in the same
// file. All problems are reported together.
func ParseCatalog(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	var (
		cat  Catalog
		errs []domain.FieldError
	)
	byName := make(map[string]domain.Objective, len(file.Objectives))

	for i, e := range file.Objectives {
		field := fmt.Sprintf("objectives[%d]", i)
		name := strings.TrimSpace(e.Name)
		kind := domain.ObjectiveKind(strings.ToUpper(strings.TrimSpace(e.Kind)))
		if kind == "" {
			kind = domain.ObjectiveKindMountain
		}

		switch {
		case name == "":
			errs = append(errs, domain.FieldError{Field: field + ".name", Message: "required"})
			continue
		case !kind.IsValid():
			errs = append(errs, domain.FieldError{Field: field + ".kind", Message: "unknown kind " + e.Kind})
			continue
		}
		if _, dup := byName[name]; dup {
			errs = append(errs, domain.FieldError{Field: field + ".name", Message: "duplicate objective " + name})
			continue
		}

		o := domain.Objective{ID: ObjectiveID(name), Name: name, Kind: kind}
		byName[name] = o
		cat.Objectives = append(cat.Objectives, o)
	}

	seenLists := make(map[string]bool, len(file.Lists))
	for i, e := range file.Lists {
		field := fmt.Sprintf("lists[%d]", i)
		name := strings.TrimSpace(e.Name)
		variant := domain.ListVariant(strings.ToUpper(strings.TrimSpace(e.Variant)))

		if name == "" {
			errs = append(errs, domain.FieldError{Field: field + ".name", Message: "required"})
			continue
		}
		if seenLists[name] {
			errs = append(errs, domain.FieldError{Field: field + ".name", Message: "duplicate list " + name})
			continue
		}
		seenLists[name] = true
		if !variant.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".variant", Message: "unknown variant " + e.Variant})
			continue
		}

		list := domain.List{ID: ListID(name), Name: name, Variant: variant}
		members := make(map[string]bool, len(e.Objectives))
		for j, member := range e.Objectives {
			member = strings.TrimSpace(member)
			o, ok := byName[member]
			switch {
			case !ok:
				errs = append(errs, domain.FieldError{
					Field:   fmt.Sprintf("%s.objectives[%d]", field, j),
					Message: "unknown objective " + member,
				})
				continue
			case members[member]:
				errs = append(errs, domain.FieldError{
					Field:   fmt.Sprintf("%s.objectives[%d]", field, j),
					Message: "listed twice",
				})
				continue
			}
			members[member] = true
			list.Objectives = append(list.Objectives, o)
		}
		cat.Lists = append(cat.Lists, list)
	}

	if len(errs) > 0 {
		return Catalog{}, domain.NewValidationErrors(errs)
	}
	return cat, nil
}
