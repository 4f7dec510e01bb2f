package skills

// defaultTerms is the built-in skill vocabulary. Entries are grouped by
// category; scan order inside the extractor is by descending length, so
// grouping here is organizational only.
var defaultTerms = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "csharp", "go", "golang", "rust", "swift", "kotlin",
	"php", "ruby", "scala", "r", "matlab", "sql", "html", "css", "bash", "shell", "powershell",

	// Frameworks and libraries
	"react", "reactjs", "angular", "angularjs", "vue", "vuejs", "node.js", "nodejs", "express", "expressjs",
	"django", "flask", "fastapi", "spring", "springboot", "laravel", "rails", "rubyonrails",
	"tensorflow", "pytorch", "scikit-learn", "sklearn", "pandas", "numpy", "matplotlib", "seaborn", "opencv",
	"jquery", "bootstrap", "tailwind", "sass", "less",

	// Databases
	"mongodb", "mongo", "postgresql", "postgres", "mysql", "redis", "elasticsearch", "cassandra",
	"oracle", "sqlite", "dynamodb", "neo4j", "mariadb",

	// Cloud and devops
	"aws", "amazon web services", "azure", "microsoft azure", "gcp", "google cloud", "google cloud platform",
	"docker", "kubernetes", "k8s", "jenkins", "git", "github", "gitlab", "bitbucket",
	"terraform", "ansible", "puppet", "chef", "linux", "ubuntu", "centos", "redhat",
	"ci/cd", "cicd", "devops", "nginx", "apache", "tomcat",

	// Data and analytics
	"machine learning", "deep learning", "artificial intelligence", "ai", "ml", "nlp",
	"natural language processing", "computer vision", "data science", "data analytics",
	"big data", "hadoop", "spark", "kafka", "airflow", "etl", "data mining", "statistics",
	"tableau", "power bi", "powerbi", "looker", "qlikview",

	// Mobile development
	"android", "ios", "react native", "flutter", "xamarin", "cordova", "phonegap",

	// Web technologies
	"rest api", "restful", "graphql", "soap", "json", "xml", "ajax", "websockets",
	"microservices", "api", "web services", "http", "https",

	// Testing and quality
	"testing", "unit testing", "integration testing", "selenium", "jest", "mocha", "chai",
	"pytest", "junit", "testng", "cucumber",

	// Methodologies and tools
	"agile", "scrum", "kanban", "jira", "confluence", "slack", "trello", "asana",
	"project management", "product management",
}

// defaultVariations maps canonical names to accepted aliases. Every alias
// belongs to exactly one canonical name; "nodejs" is claimed by "javascript",
// so the "node.js" entry carries only "node".
var defaultVariations = map[string][]string{
	"javascript":                  {"js", "node.js", "nodejs"},
	"typescript":                  {"ts"},
	"python":                      {"py"},
	"postgresql":                  {"postgres"},
	"mongodb":                     {"mongo"},
	"kubernetes":                  {"k8s"},
	"amazon web services":         {"aws"},
	"google cloud platform":       {"gcp", "google cloud"},
	"microsoft azure":             {"azure"},
	"machine learning":            {"ml"},
	"artificial intelligence":     {"ai"},
	"natural language processing": {"nlp"},
	"react":                       {"reactjs"},
	"angular":                     {"angularjs"},
	"vue":                         {"vuejs"},
	"node.js":                     {"node"},
	"express":                     {"expressjs"},
	"scikit-learn":                {"sklearn"},
}
