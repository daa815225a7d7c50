package pipeline

import (
	"context"
	"errors"
	"testing"

	"makanApa/business/gold"
	"makanApa/domain"
)

type stubStages struct {
	weatherErr error
	promoErr   error
	masterErr  error
	goldErr    error
	txnErr     error
}

type txnStage struct{ err error }

func (s txnStage) Run(context.Context) (domain.TransactionSnapshot, error) {
	return domain.TransactionSnapshot{}, s.err
}

type weatherStage struct{ err error }

func (s weatherStage) Run(context.Context) (domain.WeatherSnapshot, error) {
	return domain.WeatherSnapshot{}, s.err
}

type promoStage struct{ err error }

func (s promoStage) Run(context.Context) (domain.PromoSnapshot, error) {
	return domain.PromoSnapshot{}, s.err
}

type masterStage struct{ err error }

func (s masterStage) Run(context.Context) ([]domain.VenueRecord, error) {
	return nil, s.err
}

type goldStage struct{ err error }

func (s goldStage) Run(context.Context) (gold.RunResult, error) {
	if s.err != nil {
		return gold.RunResult{}, s.err
	}
	return gold.RunResult{GoldKey: "gold/decision_binding/data_bound_20250110_0910.csv", Rows: 7}, nil
}

func newRunner(s stubStages) *Runner {
	return NewRunner(
		txnStage{s.txnErr},
		weatherStage{s.weatherErr},
		promoStage{s.promoErr},
		masterStage{s.masterErr},
		goldStage{s.goldErr},
	)
}

func TestRunnerAllStagesOK(t *testing.T) {
	report, err := newRunner(stubStages{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(report.Stages) != 5 {
		t.Fatalf("got %d stage reports, want 5", len(report.Stages))
	}
	for _, stage := range report.Stages {
		if stage.Status != "ok" {
			t.Errorf("stage %s status = %q, want ok", stage.Stage, stage.Status)
		}
	}
	if report.GoldKey == "" || report.GoldRows != 7 {
		t.Errorf("gold summary missing from report: %+v", report)
	}
}

func TestRunnerDegradesOnOptionalStageFailure(t *testing.T) {
	report, err := newRunner(stubStages{
		weatherErr: errors.New("no bronze weather"),
		promoErr:   errors.New("no bronze promo"),
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	byStage := map[string]string{}
	for _, stage := range report.Stages {
		byStage[stage.Stage] = stage.Status
	}
	if byStage["silver_weather"] != "failed" || byStage["silver_promo"] != "failed" {
		t.Errorf("optional stage statuses wrong: %v", byStage)
	}
	if byStage["gold_bind"] != "ok" {
		t.Errorf("gold must still run when optional inputs fail: %v", byStage)
	}
}

func TestRunnerFailsWhenBinderFails(t *testing.T) {
	bindErr := domain.ErrMissingTransactionData
	_, err := newRunner(stubStages{goldErr: bindErr}).Run(context.Background())
	if !errors.Is(err, domain.ErrMissingTransactionData) {
		t.Errorf("Run = %v, want the binder error surfaced", err)
	}
}
