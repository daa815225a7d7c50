package decision

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"makanApa/business/gold"
	"makanApa/business/master"
	"makanApa/domain"
	"makanApa/internal/repository/lake"
)

// testLake seeds a lake with a single-class gold table, so the degenerate
// predict rule makes every probability exactly 1.0 and scores depend only on
// the venue attributes.
func testLake(t *testing.T, venues []domain.VenueRecord) *lake.Memory {
	t.Helper()

	mem := lake.NewMemory()

	rows := []domain.BoundFeatureRow{
		{Date: "2025-01-10", Time: "12:30:00", Venue: "A", Price: 12000, Satisfaction: 1,
			Condition: "Clear", Temperature: 31, Humidity: 60, IsLunchTime: 1},
		{Date: "2025-01-11", Time: "19:00:00", Venue: "B", Price: 30000, Satisfaction: 1,
			Condition: "Rain", Temperature: 26, Humidity: 88, IsRain: 1},
	}
	body, err := gold.MarshalCSV(rows)
	if err != nil {
		t.Fatalf("marshal gold: %v", err)
	}
	mem.PutAt(gold.GoldPrefix+"data_bound_20250110_0910.csv", body, "text/csv",
		time.Date(2025, 1, 10, 9, 10, 0, 0, time.UTC))

	payload, err := json.Marshal(venues)
	if err != nil {
		t.Fatalf("marshal venues: %v", err)
	}
	mem.PutAt(master.SilverMasterKey, payload, "application/json",
		time.Date(2025, 1, 10, 9, 11, 0, 0, time.UTC))

	return mem
}

var testVenues = []domain.VenueRecord{
	{Name: "Warung Teduh", Indoor: true, TravelMinutes: 5, AvgPrice: 12000, ServeMinutes: 5, TasteRating: 4.8, Portion: domain.PortionBesar},
	{Name: "Warung Terbuka", Indoor: false, TravelMinutes: 5, AvgPrice: 10000, ServeMinutes: 8, TasteRating: 4.0, Portion: domain.PortionSedang},
	{Name: "Resto Mewah", Indoor: true, TravelMinutes: 10, AvgPrice: 40000, ServeMinutes: 20, TasteRating: 4.9, Portion: domain.PortionJumbo},
}

func names(results []domain.RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestRecommendExcludesOutdoorUnderRain(t *testing.T) {
	mem := testLake(t, testVenues)
	svc := NewDecisionService(mem, nil, nil)

	rec, err := svc.Recommend(context.Background(), domain.ScenarioContext{
		Mode:             domain.ModeBalanced,
		IsRaining:        true,
		Temperature:      26,
		CurrentHour:      12,
		MaxBudget:        50000,
		MaxTravelMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.NoMatch {
		t.Fatal("unexpected NoMatch")
	}

	for _, r := range rec.Results {
		if r.Name == "Warung Terbuka" {
			t.Error("outdoor venue served under rain")
		}
	}
	if len(rec.Results) != 2 {
		t.Errorf("results = %v, want the two indoor venues", names(rec.Results))
	}
}

func TestRecommendBudgetRanking(t *testing.T) {
	mem := testLake(t, testVenues)
	svc := NewDecisionService(mem, nil, nil)

	rec, err := svc.Recommend(context.Background(), domain.ScenarioContext{
		Mode:             domain.ModeBudget,
		CurrentHour:      12,
		MaxTravelMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := names(rec.Results); len(got) != 3 ||
		got[0] != "Warung Teduh" || got[1] != "Warung Terbuka" || got[2] != "Resto Mewah" {
		t.Fatalf("budget order = %v", got)
	}

	// proba is pinned at 1.0, so the scores are pure venue arithmetic
	top := rec.Results[0]
	if want := 30.0 + (50000.0-12000.0)/500.0 + 20; top.Score != want {
		t.Errorf("top score = %v, want %v", top.Score, want)
	}
	if len(top.Tags) != 2 || top.Tags[0] != TagCheap || top.Tags[1] != TagHeartyMax {
		t.Errorf("top tags = %v, want [%s %s]", top.Tags, TagCheap, TagHeartyMax)
	}

	if rec.Results[1].Score <= rec.Results[2].Score {
		t.Error("cheaper venue must outscore pricier one at equal proba")
	}
}

func TestRecommendIndulgent(t *testing.T) {
	mem := testLake(t, testVenues)
	svc := NewDecisionService(mem, nil, nil)

	rec, err := svc.Recommend(context.Background(), domain.ScenarioContext{
		Mode:             domain.ModeIndulgent,
		CurrentHour:      19,
		MaxTravelMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	top := rec.Results[0]
	if top.Name != "Resto Mewah" {
		t.Fatalf("top = %q, want the highest-taste venue", top.Name)
	}
	if len(top.Tags) != 1 || top.Tags[0] != TagTopTier {
		t.Errorf("top tags = %v, want [%s]", top.Tags, TagTopTier)
	}
	if top.TakeawayRecommendation == "" {
		t.Error("top result must carry takeaway advice")
	}
	for _, r := range rec.Results[1:] {
		if r.TakeawayRecommendation != "" {
			t.Errorf("non-top result %q carries takeaway advice", r.Name)
		}
	}
}

func TestRecommendIndulgentPortionFilter(t *testing.T) {
	mem := testLake(t, testVenues)
	svc := NewDecisionService(mem, nil, nil)

	rec, err := svc.Recommend(context.Background(), domain.ScenarioContext{
		Mode:             domain.ModeIndulgent,
		CurrentHour:      19,
		MaxTravelMinutes: 30,
		PortionFilter:    []domain.Portion{domain.PortionJumbo},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := names(rec.Results); len(got) != 1 || got[0] != "Resto Mewah" {
		t.Errorf("portion-filtered results = %v, want only the Jumbo venue", got)
	}
}

func TestRecommendRushed(t *testing.T) {
	mem := testLake(t, testVenues)
	svc := NewDecisionService(mem, nil, nil)

	rec, err := svc.Recommend(context.Background(), domain.ScenarioContext{
		Mode:             domain.ModeRushed,
		CurrentHour:      12,
		MaxBudget:        50000,
		MaxTravelMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	top := rec.Results[0]
	if top.Name != "Warung Teduh" || top.Score != 140 {
		t.Errorf("top = %q score %v, want Warung Teduh at 140", top.Name, top.Score)
	}
	if len(top.Tags) != 1 || top.Tags[0] != TagLightning {
		t.Errorf("top tags = %v, want [%s]", top.Tags, TagLightning)
	}
	if top.TakeawayRecommendation != AdviceTakeaway {
		t.Errorf("rushed advice = %q, want %q", top.TakeawayRecommendation, AdviceTakeaway)
	}

	var slow *domain.RankedResult
	for i := range rec.Results {
		if rec.Results[i].Name == "Resto Mewah" {
			slow = &rec.Results[i]
		}
	}
	if slow == nil || slow.Score != 50 {
		t.Errorf("slow venue = %+v, want penalized score 50", slow)
	}
}

func TestRecommendNoMatch(t *testing.T) {
	mem := testLake(t, testVenues)
	svc := NewDecisionService(mem, nil, nil)

	rec, err := svc.Recommend(context.Background(), domain.ScenarioContext{
		Mode:             domain.ModeBalanced,
		CurrentHour:      12,
		MaxBudget:        5000,
		MaxTravelMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !rec.NoMatch {
		t.Error("expected NoMatch when every venue is filtered out")
	}
	if len(rec.Results) != 0 {
		t.Errorf("NoMatch with %d results", len(rec.Results))
	}
}

func TestRecommendWithoutGoldTable(t *testing.T) {
	mem := lake.NewMemory()
	payload, _ := json.Marshal(testVenues)
	mem.PutAt(master.SilverMasterKey, payload, "application/json",
		time.Date(2025, 1, 10, 9, 11, 0, 0, time.UTC))

	svc := NewDecisionService(mem, nil, nil)
	if _, err := svc.Recommend(context.Background(), domain.ScenarioContext{
		Mode:             domain.ModeBalanced,
		CurrentHour:      12,
		MaxBudget:        50000,
		MaxTravelMinutes: 30,
	}); err == nil {
		t.Error("expected error without a gold table to train on")
	}
}

func TestVenuesReadThrough(t *testing.T) {
	mem := testLake(t, testVenues)
	svc := NewDecisionService(mem, nil, nil)

	venues, err := svc.Venues(context.Background())
	if err != nil {
		t.Fatalf("Venues: %v", err)
	}
	if len(venues) != len(testVenues) {
		t.Errorf("got %d venues, want %d", len(venues), len(testVenues))
	}
}
