package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceIDs(services []Service) []string {
	ids := make([]string, len(services))
	for i, s := range services {
		ids[i] = s.ID
	}
	return ids
}

func TestDetect(t *testing.T) {
	text := `The backend runs on EC2 with data in MongoDB Atlas.
Authentication is handled by Auth0 and CI runs on GitHub Actions.`

	found := Detect(text)
	ids := serviceIDs(found)

	assert.Contains(t, ids, "aws-ec2")
	assert.Contains(t, ids, "mongodb-atlas")
	assert.Contains(t, ids, "auth0")
	assert.Contains(t, ids, "github-actions")
	assert.NotContains(t, ids, "vercel")
}

func TestDetectIsCaseInsensitive(t *testing.T) {
	ids := serviceIDs(Detect("Deploy with NETLIFY and store files in S3"))
	assert.Contains(t, ids, "netlify")
	assert.Contains(t, ids, "aws-s3")
}

func TestDetectReactImpliesVercelHosting(t *testing.T) {
	ids := serviceIDs(Detect("A React frontend with a Redis cache"))
	assert.Contains(t, ids, "vercel")
	assert.Contains(t, ids, "redis-cloud")

	// With hosting already present the rule does not fire.
	ids = serviceIDs(Detect("A React frontend deployed on Netlify"))
	assert.Contains(t, ids, "netlify")
	assert.NotContains(t, ids, "vercel")
}

func TestDetectNoDuplicates(t *testing.T) {
	found := Detect("mongodb mongodb atlas mongo")
	require.Len(t, found, 1)
	assert.Equal(t, "mongodb-atlas", found[0].ID)
}

func TestEstimateCostsTotals(t *testing.T) {
	est := EstimateCosts("EC2 for compute, RDS for the database")

	require.Len(t, est.Services, 2)
	assert.InDelta(t, 23.50, est.TotalMonthly, 0.001)
}

func TestEstimateMarkdown(t *testing.T) {
	est := EstimateCosts("Auth0 for login")
	doc := est.Markdown()

	assert.Contains(t, doc, "## Estimated Monthly Costs")
	assert.Contains(t, doc, "Auth0")
	assert.Contains(t, doc, "$23.00")
	// Cheaper substitutes are suggested where known.
	assert.Contains(t, doc, "Cheaper Alternatives")
	assert.Contains(t, doc, "Supabase Auth")
}

func TestEstimateMarkdownEmpty(t *testing.T) {
	doc := EstimateCosts("A plain command line tool with no services").Markdown()
	assert.Contains(t, doc, "No paid services detected")
}
