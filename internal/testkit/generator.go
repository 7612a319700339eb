// Package testkit generates realistic sample tables for tests and demos.
package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"datalens/domain/table"
)

// SampleTable builds a deterministic table of plausible customer records:
// a numeric id, names, emails, cities, signup dates, a 0/1 active flag, a
// score column seeded with outliers, and free-text notes with some gaps.
func SampleTable(seed int64, rows int) *table.Table {
	f := faker.NewWithSeed(rand.NewSource(seed))
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	ids := make([]table.Value, rows)
	names := make([]table.Value, rows)
	emails := make([]table.Value, rows)
	cities := make([]table.Value, rows)
	signups := make([]table.Value, rows)
	active := make([]table.Value, rows)
	scores := make([]table.Value, rows)
	notes := make([]table.Value, rows)

	cityPool := []string{"Austin", "Berlin", "Chicago", "Denver", "El Paso"}

	for i := 0; i < rows; i++ {
		ids[i] = table.NumberValue(float64(1000 + i))
		names[i] = table.TextValue(f.Person().Name())
		emails[i] = table.TextValue(f.Internet().Email())
		cities[i] = table.TextValue(cityPool[rng.Intn(len(cityPool))])
		signups[i] = table.TimeValue(base.AddDate(0, 0, rng.Intn(365)))
		active[i] = table.NumberValue(float64(rng.Intn(2)))

		score := 40 + 20*rng.NormFloat64()
		if rng.Float64() < 0.02 {
			score *= 10 // deliberate outliers
		}
		scores[i] = table.NumberValue(score)

		if rng.Float64() < 0.1 {
			notes[i] = table.Missing()
		} else {
			notes[i] = table.TextValue(fmt.Sprintf("%s %s", f.Lorem().Word(), f.Lorem().Word()))
		}
	}

	return &table.Table{Columns: []table.Column{
		{Name: "id", Kind: table.KindNumeric, Values: ids},
		{Name: "name", Kind: table.KindString, Values: names},
		{Name: "email", Kind: table.KindString, Values: emails},
		{Name: "city", Kind: table.KindString, Values: cities},
		{Name: "signup_date", Kind: table.KindDatetime, Values: signups},
		{Name: "active", Kind: table.KindNumeric, Values: active},
		{Name: "score", Kind: table.KindNumeric, Values: scores},
		{Name: "notes", Kind: table.KindString, Values: notes},
	}}
}
