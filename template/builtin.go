package template

// builtins are the templates shipped with the tool. They are prompt
// presets, not file skeletons: each seeds plan generation with a
// proven project description.
var builtins = []Template{
	{
		ID:          "react-spa",
		Name:        "React Single-Page App",
		Description: "Modern React frontend with routing, state management, and API integration",
		Tags:        []string{"frontend", "react", "typescript"},
		Prompt: "A single-page web application built with React 18 and TypeScript, " +
			"using Vite for builds, React Router for navigation, and TanStack Query " +
			"for server state. Includes component testing with Vitest and " +
			"Testing Library, ESLint and Prettier configuration, and deployment to Vercel.",
	},
	{
		ID:          "node-express-api",
		Name:        "Node.js Express API",
		Description: "RESTful backend with authentication, validation, and a relational database",
		Tags:        []string{"backend", "node", "api"},
		Prompt: "A REST API built with Node.js, Express, and TypeScript. PostgreSQL " +
			"with Prisma for persistence, JWT authentication with refresh tokens, " +
			"request validation with Zod, structured logging, rate limiting, and " +
			"OpenAPI documentation. Tested with Jest and Supertest.",
	},
	{
		ID:          "flutter-mobile",
		Name:        "Flutter Mobile App",
		Description: "Cross-platform mobile application with local storage and push notifications",
		Tags:        []string{"mobile", "flutter", "dart"},
		Prompt: "A cross-platform mobile application built with Flutter and Dart, " +
			"targeting iOS and Android. Riverpod for state management, local " +
			"persistence with sqflite, Firebase for push notifications and " +
			"analytics, and integration tests with the Flutter driver.",
	},
	{
		ID:          "python-data-pipeline",
		Name:        "Python Data Pipeline",
		Description: "Batch ETL pipeline with scheduling, validation, and warehouse loading",
		Tags:        []string{"data", "python", "etl"},
		Prompt: "A batch data pipeline in Python that extracts from REST APIs and " +
			"CSV drops, validates and transforms records with pandas and pydantic, " +
			"and loads into a data warehouse. Orchestrated with Airflow, " +
			"containerized with Docker, tested with pytest.",
	},
	{
		ID:          "electron-desktop",
		Name:        "Electron Desktop App",
		Description: "Cross-platform desktop application with native menus and auto-update",
		Tags:        []string{"desktop", "electron", "typescript"},
		Prompt: "A cross-platform desktop application built with Electron and " +
			"TypeScript, with a React renderer process, secure IPC between main " +
			"and renderer, native menus and tray integration, persistent settings, " +
			"auto-update support, and packaging with electron-builder.",
	},
}
