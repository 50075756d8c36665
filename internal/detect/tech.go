package detect

import (
	"encoding/json"
	"path"
	"sort"
	"strings"
)

// Manifests is the scan surface for technology detection: raw manifest
// contents where found, empty strings where absent. A missing manifest
// simply contributes nothing.
type Manifests struct {
	PackageJSON  string
	CargoToml    string
	Requirements string // requirements.txt
	PyProject    string
	HasGoMod     bool
}

// TechResult is the classifier output for one repository.
type TechResult struct {
	Technologies []string
	Category     string
}

// packageLabels maps JS dependency names to display labels, in fixed
// priority order so output order never depends on map iteration.
var packageLabels = []struct {
	Dep   string
	Label string
}{
	{"react", "React"},
	{"next", "Next.js"},
	{"vue", "Vue.js"},
	{"svelte", "Svelte"},
	{"three", "Three.js"},
	{"express", "Express"},
	{"electron", "Electron"},
	{"tailwindcss", "Tailwind CSS"},
	{"typescript", "TypeScript"},
	{"vite", "Vite"},
	{"webpack", "Webpack"},
	{"jest", "Jest"},
}

// crateLabels maps Cargo.toml crate names (substring match) to labels.
var crateLabels = []struct {
	Crate string
	Label string
}{
	{"bevy", "Bevy"},
	{"tokio", "Tokio"},
	{"actix", "Actix"},
	{"serde", "Serde"},
	{"wasm-bindgen", "WebAssembly"},
}

// pythonLabels maps Python requirement names to labels. Matched against
// requirements.txt declarations and pyproject.toml dependency strings.
var pythonLabels = []struct {
	Pkg   string
	Label string
}{
	{"tensorflow", "TensorFlow"},
	{"torch", "PyTorch"},
	{"keras", "Keras"},
	{"scikit-learn", "scikit-learn"},
	{"opencv", "OpenCV"},
	{"numpy", "NumPy"},
	{"pandas", "Pandas"},
	{"django", "Django"},
	{"flask", "Flask"},
	{"fastapi", "FastAPI"},
}

// topicLabels maps GitHub topic tags to technology labels.
var topicLabels = []struct {
	Topic string
	Label string
}{
	{"react", "React"},
	{"nextjs", "Next.js"},
	{"vue", "Vue.js"},
	{"three-js", "Three.js"},
	{"threejs", "Three.js"},
	{"unity", "Unity"},
	{"godot", "Godot"},
	{"arduino", "Arduino"},
	{"raspberry-pi", "Raspberry Pi"},
	{"ros", "ROS"},
	{"opengl", "OpenGL"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"tensorflow", "TensorFlow"},
	{"pytorch", "PyTorch"},
	{"webgl", "WebGL"},
	{"postgresql", "PostgreSQL"},
}

// DetectTech inspects manifest contents, topic tags, and the primary
// language and returns the technology list plus the category label.
// Detection order is fixed: JS manifest, Rust manifest, Python
// declarations, Go module, primary language, then topic tags.
// Duplicates collapse to their first occurrence.
func DetectTech(m Manifests, topics []string, language string) TechResult {
	var techs []string
	seen := make(map[string]bool)
	add := func(label string) {
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		techs = append(techs, label)
	}

	for _, label := range packageJSONTechs(m.PackageJSON) {
		add(label)
	}
	if m.CargoToml != "" {
		add("Rust")
		for _, c := range crateLabels {
			if strings.Contains(m.CargoToml, c.Crate) {
				add(c.Label)
			}
		}
	}
	pydeps := m.Requirements + "\n" + m.PyProject
	if strings.TrimSpace(pydeps) != "" {
		for _, p := range pythonLabels {
			if containsRequirement(pydeps, p.Pkg) {
				add(p.Label)
			}
		}
	}
	if m.HasGoMod {
		add("Go")
	}
	add(language)
	for _, t := range topicLabels {
		if hasTopic(topics, t.Topic) {
			add(t.Label)
		}
	}

	return TechResult{
		Technologies: techs,
		Category:     DetectCategory(topics, techs, language),
	}
}

// packageJSONTechs extracts technology labels from the dependency keys
// of a package.json document. Unreadable JSON contributes nothing.
func packageJSONTechs(content string) []string {
	if content == "" {
		return nil
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil
	}

	var labels []string
	for _, entry := range packageLabels {
		if _, ok := pkg.Dependencies[entry.Dep]; ok {
			labels = append(labels, entry.Label)
			continue
		}
		if _, ok := pkg.DevDependencies[entry.Dep]; ok {
			labels = append(labels, entry.Label)
		}
	}
	return labels
}

// containsRequirement reports whether a requirements/pyproject blob
// declares pkg, matching on declaration prefixes so that e.g. "numpy"
// does not match a comment mentioning it mid-line.
func containsRequirement(text, pkg string) bool {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.ToLower(strings.TrimSpace(raw))
		line = strings.Trim(line, `"',`)
		if strings.HasPrefix(line, pkg) {
			return true
		}
	}
	return false
}

func hasTopic(topics []string, want string) bool {
	for _, t := range topics {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

// extLanguages maps source-file extensions to language names, in the
// order used to break count ties.
var extLanguages = []struct {
	Ext   string
	Label string
}{
	{".go", "Go"},
	{".py", "Python"},
	{".rs", "Rust"},
	{".ts", "TypeScript"},
	{".tsx", "TypeScript"},
	{".js", "JavaScript"},
	{".jsx", "JavaScript"},
	{".cs", "C#"},
	{".cpp", "C++"},
	{".c", "C"},
	{".java", "Java"},
	{".kt", "Kotlin"},
	{".swift", "Swift"},
	{".rb", "Ruby"},
}

// LanguagesFromFiles infers the languages present in a file listing
// from an extension census, most common first. Used by the local-scan
// variant, which has no hosting-API language field to fold in.
func LanguagesFromFiles(paths []string) []string {
	counts := make(map[string]int)
	for _, p := range paths {
		ext := strings.ToLower(path.Ext(p))
		for _, e := range extLanguages {
			if e.Ext == ext {
				counts[e.Label]++
				break
			}
		}
	}

	var langs []string
	seen := make(map[string]bool)
	for _, e := range extLanguages {
		if counts[e.Label] > 0 && !seen[e.Label] {
			seen[e.Label] = true
			langs = append(langs, e.Label)
		}
	}
	sort.SliceStable(langs, func(i, j int) bool {
		return counts[langs[i]] > counts[langs[j]]
	})
	return langs
}

// CategorySignals is the input to one category rule.
type CategorySignals struct {
	Topics       []string
	Technologies map[string]bool
	Language     string
}

// CategoryRule is one predicate/label pair in the category decision
// list.
type CategoryRule struct {
	Label string
	Match func(CategorySignals) bool
}

func anyTopic(names ...string) func(CategorySignals) bool {
	return func(s CategorySignals) bool {
		for _, n := range names {
			if hasTopic(s.Topics, n) {
				return true
			}
		}
		return false
	}
}

func topicOrTech(topics []string, techs ...string) func(CategorySignals) bool {
	byTopic := anyTopic(topics...)
	return func(s CategorySignals) bool {
		if byTopic(s) {
			return true
		}
		for _, t := range techs {
			if s.Technologies[t] {
				return true
			}
		}
		return false
	}
}

func languageIs(lang string) func(CategorySignals) bool {
	return func(s CategorySignals) bool { return s.Language == lang }
}

// CategoryRules is the ordered decision list for category inference.
// Evaluation is strictly top-to-bottom, first match wins: 3D checks
// precede framework checks so a repo tagged both react and three-js
// classifies as Web 3D, and all topic-driven checks precede the
// language fallbacks.
var CategoryRules = []CategoryRule{
	{"Game Development", anyTopic("game", "games", "gamedev", "game-development", "unity", "godot", "unreal")},
	{"Robotics", anyTopic("robotics", "robot", "ros", "arduino", "raspberry-pi", "embedded")},
	{"Machine Learning", topicOrTech(
		[]string{"machine-learning", "deep-learning", "neural-network", "data-science", "ai"},
		"TensorFlow", "PyTorch", "Keras", "scikit-learn")},
	{"Web 3D", topicOrTech(
		[]string{"three-js", "threejs", "webgl", "3d"},
		"Three.js", "WebGL")},
	{"Web App", topicOrTech(
		[]string{"react", "nextjs", "vue", "svelte", "website", "webapp", "web-app", "frontend"},
		"React", "Next.js", "Vue.js", "Svelte")},
	{"Backend/API", topicOrTech(
		[]string{"api", "backend", "rest-api", "server", "microservice"},
		"Express", "Django", "Flask", "FastAPI")},
	{"Mobile App", anyTopic("android", "ios", "mobile", "flutter", "react-native")},
	{"CLI Tool", anyTopic("cli", "terminal", "command-line")},
	{"Game Development", languageIs("C#")},
	{"Systems Programming", languageIs("Rust")},
	{"Backend/API", languageIs("Go")},
	{"Python", languageIs("Python")},
}

// DefaultCategory is used when no rule matches.
const DefaultCategory = "Software"

// DetectCategory runs the ordered decision list over the repository's
// topics, detected technologies, and primary language.
func DetectCategory(topics, technologies []string, language string) string {
	signals := CategorySignals{
		Topics:       topics,
		Technologies: make(map[string]bool, len(technologies)),
		Language:     language,
	}
	for _, t := range technologies {
		signals.Technologies[t] = true
	}
	for _, rule := range CategoryRules {
		if rule.Match(signals) {
			return rule.Label
		}
	}
	return DefaultCategory
}
