package segment_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/model/config"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/service/segment"
)

func ex(user, assistant string) *model.Exchange {
	return &model.Exchange{User: user, Assistant: assistant, Timestamp: 1700000000000}
}

func TestDetectFirstExchange(t *testing.T) {
	d := segment.NewDetector(nil)

	b := d.Detect(ex("hello there", "hi"), nil)
	gt.Bool(t, b.IsBoundary).False()
	gt.Value(t, b.Type).Equal(types.BoundaryType(""))
}

func TestDetectHardBoundary(t *testing.T) {
	d := segment.NewDetector(nil)

	prev := ex("how does the scheduler work?", "it polls the queue every second")
	curr := ex("/tlc:build all targets", "starting build")

	b := d.Detect(curr, prev)
	gt.Bool(t, b.IsBoundary).True()
	gt.Value(t, b.Type).Equal(types.BoundaryHard)
}

func TestDetectSoftBoundary(t *testing.T) {
	d := segment.NewDetector(nil)

	prev := ex("can you explain the retry logic?", "retries use exponential backoff")
	curr := ex("ok, now let's look at the login page", "sure")

	b := d.Detect(curr, prev)
	gt.Bool(t, b.IsBoundary).True()
	gt.Value(t, b.Type).Equal(types.BoundarySoft)
}

func TestDetectSemanticBoundary(t *testing.T) {
	d := segment.NewDetector(nil)

	prev := ex(
		"the database migration keeps failing with postgres connection timeouts during deployment",
		"check the connection pool settings, the migration transaction holds locks during deployment windows",
	)
	curr := ex(
		"what color palette should the dashboard sidebar navigation use for accessibility",
		"choose high contrast palette combinations, test sidebar navigation colors against accessibility guidelines",
	)

	b := d.Detect(curr, prev)
	gt.Bool(t, b.IsBoundary).True()
	gt.Value(t, b.Type).Equal(types.BoundarySemantic)
}

func TestDetectNoSemanticBoundaryOnSharedTopic(t *testing.T) {
	d := segment.NewDetector(nil)

	prev := ex(
		"Should we use Postgres or SQLite for the service database backend storage?",
		"Postgres handles concurrent database connections better, SQLite keeps storage simple",
	)
	curr := ex(
		"Any other database considerations for Postgres versus SQLite storage backend?",
		"Consider database backup tooling, Postgres replication and SQLite file storage limits",
	)

	b := d.Detect(curr, prev)
	gt.Bool(t, b.IsBoundary).False()
}

func TestDetectShortTurnsNeverSemantic(t *testing.T) {
	d := segment.NewDetector(nil)

	// Both turns are far below the keyword minimum, so overlap is
	// statistically meaningless and must not trigger a boundary
	prev := ex("thanks", "you're welcome")
	curr := ex("bye now", "see you")

	b := d.Detect(curr, prev)
	gt.Bool(t, b.IsBoundary).False()
}

func TestDetectPriorityHardOverSoft(t *testing.T) {
	cfg := config.DefaultSegmentConfig()
	d := segment.NewDetector(cfg)

	prev := ex("let's review the config parser implementation details", "the parser reads toml files")
	curr := ex("/tlc:review ok, now something else", "on it")

	b := d.Detect(curr, prev)
	gt.Value(t, b.Type).Equal(types.BoundaryHard)
}
