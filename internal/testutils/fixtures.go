package testutils

import (
	"fmt"

	"github.com/KirkDiggler/party-share/internal/catalog"
	"github.com/KirkDiggler/party-share/internal/domain/party"
)

// CreateTestItem creates a catalog item whose image lives under the category's folder
func CreateTestItem(category party.Category, name, attribute string) party.Item {
	folder := "character"
	if category == party.CategoryRemnant {
		folder = "zanshi"
	}
	return party.Item{
		Name:      name,
		Attribute: attribute,
		ImageRef:  fmt.Sprintf("./image/%s/%s.png", folder, name),
	}
}

// CreateTestCatalogDocument creates a catalog with n characters and n remnants
func CreateTestCatalogDocument(n int) *catalog.Document {
	doc := &catalog.Document{}
	for i := 1; i <= n; i++ {
		doc.Characters = append(doc.Characters, CreateTestItem(party.CategoryCharacter, fmt.Sprintf("i_ch%d", i), ""))
		doc.Remnants = append(doc.Remnants, CreateTestItem(party.CategoryRemnant, fmt.Sprintf("zanshi%d", i), "残滓"))
	}
	return doc
}

// CreateTestSnapshot creates a default-layout snapshot with the given characters in the first slots
func CreateTestSnapshot(theme party.Theme, characters ...string) party.Snapshot {
	snap := party.EmptySnapshot(party.DefaultLayout)
	snap.Theme = theme
	for i, name := range characters {
		item := CreateTestItem(party.CategoryCharacter, name, "")
		snap.Characters[i] = &item
	}
	return snap
}
