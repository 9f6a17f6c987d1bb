package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/research-queue/internal/adapters/catalog"
	"github.com/andrescamacho/research-queue/internal/adapters/host"
	"github.com/andrescamacho/research-queue/internal/application/common"
	researchApp "github.com/andrescamacho/research-queue/internal/application/research"
	"github.com/andrescamacho/research-queue/internal/domain/research"
	"github.com/andrescamacho/research-queue/internal/domain/shared"
	"github.com/andrescamacho/research-queue/test/helpers"
)

type projectRow struct {
	id    string
	depth int
	cost  float64
}

// researchQueueContext holds state for research queue scenarios
type researchQueueContext struct {
	rows      []projectRow
	catalog   *catalog.StaticCatalog
	host      *host.InMemoryHost
	sink      *helpers.RecordingSink
	logger    *helpers.RecordingLogger
	repos     *helpers.TestRepositories
	sessionID shared.SessionID
	session   *researchApp.Session
	ctx       context.Context

	dequeued *research.Node
	restored *researchApp.RestoreResult
}

func (rqc *researchQueueContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	rqc.rows = nil
	rqc.catalog = nil
	rqc.host = nil
	rqc.sink = nil
	rqc.logger = helpers.NewRecordingLogger()
	rqc.repos = helpers.NewTestRepositories(nil, shared.NewMockClock(time.Time{}))
	rqc.session = nil
	rqc.ctx = common.WithLogger(context.Background(), rqc.logger)
	rqc.dequeued = nil
	rqc.restored = nil
	return nil
}

// ============================================================================
// Setup Steps
// ============================================================================

func (rqc *researchQueueContext) aResearchCatalogWithProjects(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		depth, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return fmt.Errorf("invalid depth %q: %w", row.Cells[1].Value, err)
		}
		cost, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return fmt.Errorf("invalid cost %q: %w", row.Cells[2].Value, err)
		}
		rqc.rows = append(rqc.rows, projectRow{id: row.Cells[0].Value, depth: depth, cost: cost})
	}
	rqc.catalog = rqc.buildCatalog("")
	return nil
}

// buildCatalog creates fresh nodes for every row except the excluded one,
// the way a reloaded game rebuilds its tree
func (rqc *researchQueueContext) buildCatalog(excluded string) *catalog.StaticCatalog {
	rows := rqc.rows
	return catalog.NewStaticCatalog(func(ctx context.Context) ([]*research.Node, error) {
		nodes := make([]*research.Node, 0, len(rows))
		for _, row := range rows {
			if row.id == excluded {
				continue
			}
			project, err := research.NewProjectDef(row.id, row.id, "", row.cost)
			if err != nil {
				return nil, err
			}
			node, err := research.NewNode(project, row.depth, nil)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
		return nodes, nil
	})
}

func (rqc *researchQueueContext) aResearchSession(id string) error {
	sessionID, err := shared.NewSessionID(id)
	if err != nil {
		return err
	}
	rqc.sessionID = sessionID
	return rqc.openSession()
}

func (rqc *researchQueueContext) openSession() error {
	if err := rqc.catalog.Initialize(rqc.ctx); err != nil {
		return err
	}
	rqc.host = host.NewInMemoryHost(rqc.catalog, 1, false)
	rqc.sink = helpers.NewRecordingSink()

	session, err := researchApp.NewSession(rqc.sessionID, researchApp.SessionDependencies{
		Catalog:   rqc.catalog,
		Host:      rqc.host,
		Sink:      rqc.sink,
		Snapshots: rqc.repos.Snapshots,
	})
	if err != nil {
		return err
	}
	rqc.session = session
	return nil
}

func (rqc *researchQueueContext) projectHasProgress(id string, progress float64) error {
	node, err := rqc.node(id)
	if err != nil {
		return err
	}
	rqc.host.SetProgress(node.Research(), progress)
	return nil
}

// ============================================================================
// Queue Action Steps
// ============================================================================

func (rqc *researchQueueContext) iEnqueue(id string) error {
	node, err := rqc.node(id)
	if err != nil {
		return err
	}
	rqc.session.Queue().Enqueue(node, true)
	return nil
}

func (rqc *researchQueueContext) iReplaceTheQueueWith(id string) error {
	node, err := rqc.node(id)
	if err != nil {
		return err
	}
	rqc.session.Queue().Enqueue(node, false)
	return nil
}

func (rqc *researchQueueContext) iReplaceTheQueueWithTheRange(ids string) error {
	nodes, err := rqc.session.ResolveNodes(rqc.ctx, splitIDs(ids))
	if err != nil {
		return err
	}
	rqc.session.Queue().EnqueueRange(nodes, false)
	return nil
}

func (rqc *researchQueueContext) iAppendTheRange(ids string) error {
	nodes, err := rqc.session.ResolveNodes(rqc.ctx, splitIDs(ids))
	if err != nil {
		return err
	}
	rqc.session.Queue().EnqueueRange(nodes, true)
	return nil
}

func (rqc *researchQueueContext) iDequeueFromTheQueue() error {
	rqc.dequeued = rqc.session.Queue().Dequeue()
	return nil
}

func (rqc *researchQueueContext) iRemoveFromTheQueue(id string) error {
	node, err := rqc.node(id)
	if err != nil {
		return err
	}
	if !rqc.session.Queue().Remove(node) {
		return fmt.Errorf("%s was not queued", id)
	}
	return nil
}

func (rqc *researchQueueContext) iAdvanceResearchBy(amount float64) error {
	rqc.session.Engine().AdvanceProgress(rqc.ctx, amount)
	return nil
}

// ============================================================================
// Persistence Steps
// ============================================================================

func (rqc *researchQueueContext) iSaveTheQueue() error {
	_, err := rqc.session.Save(rqc.ctx)
	return err
}

func (rqc *researchQueueContext) theCatalogIsReloaded() error {
	rqc.catalog = rqc.buildCatalog("")
	return nil
}

func (rqc *researchQueueContext) theCatalogIsReloadedWithout(id string) error {
	rqc.catalog = rqc.buildCatalog(id)
	return nil
}

func (rqc *researchQueueContext) iLoadTheQueueIntoAFreshSession() error {
	if err := rqc.openSession(); err != nil {
		return err
	}
	result, err := rqc.session.Load(rqc.ctx)
	if err != nil {
		return err
	}
	rqc.restored = result
	return nil
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (rqc *researchQueueContext) theQueueShouldBe(ids string) error {
	expected := strings.Join(splitIDs(ids), ",")
	actual := strings.Join(rqc.session.Queue().ProjectIDs(), ",")
	if expected != actual {
		return fmt.Errorf("expected queue [%s], got [%s]", expected, actual)
	}
	return rqc.theCurrentProjectShouldMatchTheQueueHead()
}

func (rqc *researchQueueContext) theQueueShouldBeEmpty() error {
	if n := rqc.session.Queue().Len(); n != 0 {
		return fmt.Errorf("expected an empty queue, got %d entries", n)
	}
	return nil
}

func (rqc *researchQueueContext) theCurrentProjectShouldBe(id string) error {
	current := rqc.host.CurrentProject()
	if current == nil {
		return fmt.Errorf("expected current project %s, got none", id)
	}
	if current.ID() != id {
		return fmt.Errorf("expected current project %s, got %s", id, current.ID())
	}
	return nil
}

func (rqc *researchQueueContext) thereShouldBeNoCurrentProject() error {
	if current := rqc.host.CurrentProject(); current != nil {
		return fmt.Errorf("expected no current project, got %s", current.ID())
	}
	return nil
}

func (rqc *researchQueueContext) theCurrentProjectShouldMatchTheQueueHead() error {
	head := rqc.session.Queue().Head()
	current := rqc.host.CurrentProject()
	if head == nil {
		if current != nil {
			return fmt.Errorf("empty queue but current project is %s", current.ID())
		}
		return nil
	}
	if head.Research() != current {
		return fmt.Errorf("queue head %s is not the current project %v", head.Research().ID(), current)
	}
	return nil
}

func (rqc *researchQueueContext) noNodeShouldBeReturned() error {
	if rqc.dequeued != nil {
		return fmt.Errorf("expected no node, got %s", rqc.dequeued)
	}
	return nil
}

func (rqc *researchQueueContext) theQueueShouldHoldTheReloadedNodes() error {
	for _, node := range rqc.session.Queue().Nodes() {
		if rqc.catalog.FindByProjectID(node.Research().ID()) != node {
			return fmt.Errorf("queued node %s is not from the reloaded catalog", node)
		}
	}
	return nil
}

func (rqc *researchQueueContext) shouldBeReportedAsSkipped(id string) error {
	if rqc.restored == nil {
		return fmt.Errorf("the queue was not loaded")
	}
	for _, skipped := range rqc.restored.Skipped {
		if skipped == id {
			return nil
		}
	}
	return fmt.Errorf("expected %s to be skipped, skipped: %v", id, rqc.restored.Skipped)
}

func (rqc *researchQueueContext) exactlyNotificationsShouldBeEmitted(count int) error {
	if actual := rqc.sink.Count(); actual != count {
		return fmt.Errorf("expected %d notifications, got %d", count, actual)
	}
	return nil
}

func (rqc *researchQueueContext) noNotificationShouldBeEmitted() error {
	return rqc.exactlyNotificationsShouldBeEmitted(0)
}

func (rqc *researchQueueContext) theLastNotificationShouldBeFor(severity, id string) error {
	n, ok := rqc.sink.Last()
	if !ok {
		return fmt.Errorf("no notification was emitted")
	}
	if n.Severity.String() != severity {
		return fmt.Errorf("expected severity %s, got %s", severity, n.Severity)
	}
	if n.ProjectID != id {
		return fmt.Errorf("expected notification for %s, got %s", id, n.ProjectID)
	}
	return nil
}

func (rqc *researchQueueContext) projectShouldHaveProgress(id string, expected float64) error {
	node, err := rqc.node(id)
	if err != nil {
		return err
	}
	if actual := rqc.host.GetProgress(node.Research()); actual != expected {
		return fmt.Errorf("expected %s progress %.2f, got %.2f", id, expected, actual)
	}
	return nil
}

func (rqc *researchQueueContext) anErrorShouldBeLogged() error {
	errs := rqc.logger.ByLevel(common.LevelError)
	if len(errs) != 1 {
		return fmt.Errorf("expected 1 error log, got %d", len(errs))
	}
	if errs[0].Message != research.ErrNoActiveProject.Error() {
		return fmt.Errorf("unexpected error log %q", errs[0].Message)
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func (rqc *researchQueueContext) node(id string) (*research.Node, error) {
	node := rqc.catalog.FindByProjectID(id)
	if node == nil {
		return nil, fmt.Errorf("project %s is not in the catalog", id)
	}
	return node, nil
}

func splitIDs(ids string) []string {
	parts := strings.Split(ids, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// InitializeResearchQueueScenario registers research queue steps
func InitializeResearchQueueScenario(sc *godog.ScenarioContext) {
	rqc := &researchQueueContext{}

	// Before each scenario
	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, rqc.reset()
	})

	// Setup steps
	sc.Step(`^a research catalog with projects:$`, rqc.aResearchCatalogWithProjects)
	sc.Step(`^a research session "([^"]*)"$`, rqc.aResearchSession)
	sc.Step(`^project "([^"]*)" has progress (\d+(?:\.\d+)?)$`, rqc.projectHasProgress)

	// Queue action steps
	sc.Step(`^I enqueue "([^"]*)"$`, rqc.iEnqueue)
	sc.Step(`^I replace the queue with "([^"]*)"$`, rqc.iReplaceTheQueueWith)
	sc.Step(`^I replace the queue with the range "([^"]*)"$`, rqc.iReplaceTheQueueWithTheRange)
	sc.Step(`^I append the range "([^"]*)"$`, rqc.iAppendTheRange)
	sc.Step(`^I dequeue from the queue$`, rqc.iDequeueFromTheQueue)
	sc.Step(`^I remove "([^"]*)" from the queue$`, rqc.iRemoveFromTheQueue)
	sc.Step(`^I advance research by (-?\d+(?:\.\d+)?)$`, rqc.iAdvanceResearchBy)

	// Persistence steps
	sc.Step(`^I save the queue$`, rqc.iSaveTheQueue)
	sc.Step(`^the catalog is reloaded$`, rqc.theCatalogIsReloaded)
	sc.Step(`^the catalog is reloaded without "([^"]*)"$`, rqc.theCatalogIsReloadedWithout)
	sc.Step(`^I load the queue into a fresh session$`, rqc.iLoadTheQueueIntoAFreshSession)

	// Assertion steps
	sc.Step(`^the queue should be "([^"]*)"$`, rqc.theQueueShouldBe)
	sc.Step(`^the queue should be empty$`, rqc.theQueueShouldBeEmpty)
	sc.Step(`^the current project should be "([^"]*)"$`, rqc.theCurrentProjectShouldBe)
	sc.Step(`^there should be no current project$`, rqc.thereShouldBeNoCurrentProject)
	sc.Step(`^the current project should match the queue head$`, rqc.theCurrentProjectShouldMatchTheQueueHead)
	sc.Step(`^no node should be returned$`, rqc.noNodeShouldBeReturned)
	sc.Step(`^the queue should hold the reloaded nodes$`, rqc.theQueueShouldHoldTheReloadedNodes)
	sc.Step(`^"([^"]*)" should be reported as skipped$`, rqc.shouldBeReportedAsSkipped)
	sc.Step(`^exactly (\d+) notifications? should be emitted$`, rqc.exactlyNotificationsShouldBeEmitted)
	sc.Step(`^no notification should be emitted$`, rqc.noNotificationShouldBeEmitted)
	sc.Step(`^the last notification should be "([^"]*)" for "([^"]*)"$`, rqc.theLastNotificationShouldBeFor)
	sc.Step(`^project "([^"]*)" should have progress (\d+(?:\.\d+)?)$`, rqc.projectShouldHaveProgress)
	sc.Step(`^an error should be logged$`, rqc.anErrorShouldBeLogged)
}
