// Package cost detects paid services mentioned in a plan and produces
// a rough monthly cost estimate with cheaper alternatives.
package cost

// Service is one billable service the detector can recognize.
type Service struct {
	ID         string
	Name       string
	Category   string
	MonthlyUSD float64
	FreeTier   string
	Keywords   []string
}

// Categories group detected services in the rendered estimate.
const (
	CategoryCompute  = "compute"
	CategoryStorage  = "storage"
	CategoryDatabase = "database"
	CategoryHosting  = "hosting"
	CategoryAuth     = "auth"
	CategoryCI       = "ci"
	CategoryAI       = "ai"
)

// services is the static pricing table. Prices are entry-tier monthly
// figures and intentionally coarse.
var services = []Service{
	{
		ID: "aws-ec2", Name: "AWS EC2", Category: CategoryCompute,
		MonthlyUSD: 8.50, FreeTier: "750 hours/month of t2.micro for 12 months",
		Keywords: []string{"ec2", "aws compute", "amazon ec2"},
	},
	{
		ID: "aws-s3", Name: "AWS S3", Category: CategoryStorage,
		MonthlyUSD: 2.30, FreeTier: "5 GB for 12 months",
		Keywords: []string{"s3", "aws storage", "amazon s3", "object storage"},
	},
	{
		ID: "aws-lambda", Name: "AWS Lambda", Category: CategoryCompute,
		MonthlyUSD: 0, FreeTier: "1M requests/month",
		Keywords: []string{"lambda", "serverless function", "aws function"},
	},
	{
		ID: "aws-rds", Name: "AWS RDS", Category: CategoryDatabase,
		MonthlyUSD: 15.00, FreeTier: "750 hours/month of db.t2.micro for 12 months",
		Keywords: []string{"rds", "aws database", "amazon rds"},
	},
	{
		ID: "vercel", Name: "Vercel", Category: CategoryHosting,
		MonthlyUSD: 0, FreeTier: "Hobby tier; Pro is $20/month",
		Keywords: []string{"vercel", "next.js hosting"},
	},
	{
		ID: "netlify", Name: "Netlify", Category: CategoryHosting,
		MonthlyUSD: 0, FreeTier: "Starter tier; Pro is $19/month",
		Keywords: []string{"netlify"},
	},
	{
		ID: "mongodb-atlas", Name: "MongoDB Atlas", Category: CategoryDatabase,
		MonthlyUSD: 9.00, FreeTier: "512 MB shared cluster",
		Keywords: []string{"mongodb", "mongo", "atlas"},
	},
	{
		ID: "redis-cloud", Name: "Redis Cloud", Category: CategoryDatabase,
		MonthlyUSD: 5.00, FreeTier: "30 MB",
		Keywords: []string{"redis", "cache layer", "caching layer"},
	},
	{
		ID: "supabase", Name: "Supabase", Category: CategoryDatabase,
		MonthlyUSD: 0, FreeTier: "Free tier; Pro is $25/month",
		Keywords: []string{"supabase"},
	},
	{
		ID: "github-actions", Name: "GitHub Actions", Category: CategoryCI,
		MonthlyUSD: 0, FreeTier: "2000 minutes/month",
		Keywords: []string{"github actions", "ci/cd", "ci pipeline", "continuous integration"},
	},
	{
		ID: "auth0", Name: "Auth0", Category: CategoryAuth,
		MonthlyUSD: 23.00, FreeTier: "7500 active users",
		Keywords: []string{"auth0", "oauth provider"},
	},
	{
		ID: "openai-api", Name: "OpenAI API", Category: CategoryAI,
		MonthlyUSD: 10.00, FreeTier: "none, usage-based",
		Keywords: []string{"openai", "gpt-4", "gpt-3.5", "chatgpt api", "llm api"},
	},
}

// alternatives maps a service id to cheaper or free substitutes.
var alternatives = map[string][]string{
	"aws-ec2":       {"Vercel (free hobby tier)", "Netlify (free starter tier)", "Fly.io (free allowance)"},
	"aws-rds":       {"Supabase (free Postgres tier)", "Neon (free Postgres tier)"},
	"mongodb-atlas": {"Supabase (free Postgres tier)", "SQLite for small projects"},
	"auth0":         {"Supabase Auth (free tier)", "NextAuth.js (self-hosted, free)"},
	"redis-cloud":   {"Upstash (free tier)", "in-process cache for small projects"},
	"openai-api":    {"Groq (generous free tier)", "Ollama (local, free)"},
}

// Alternatives returns known substitutes for a detected service.
func Alternatives(serviceID string) []string {
	return alternatives[serviceID]
}
