package bdd

import (
	"os"
	"testing"

	"github.com/andrescamacho/research-queue/test/bdd/steps"
	"github.com/andrescamacho/research-queue/test/helpers"
	"github.com/cucumber/godog"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeResearchQueueScenario(sc)
}

func TestMain(m *testing.M) {
	// Initialize shared test database for all integration tests
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}
	code := m.Run()
	_ = helpers.CloseSharedTestDB()

	os.Exit(code)
}
