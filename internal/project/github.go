package project

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	githubAPIURL   = "https://api.github.com"
	acceptHeader   = "application/vnd.github.v3+json"
	probeTimeout   = 10 * time.Second
	readmeMaxBytes = 2000
)

var repoURLRe = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+)`)

// Analyzer probes GitHub repositories and live deployments to build the
// external context map. Failures are absorbed into a partial map; the
// interview proceeds with whatever could be resolved.
type Analyzer struct {
	APIURL     string
	HTTPClient *http.Client
	logger     *zap.Logger
}

func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		APIURL:     githubAPIURL,
		HTTPClient: &http.Client{Timeout: probeTimeout},
		logger:     logger,
	}
}

// Resolve builds the opaque context map from the provided URLs. Both URLs
// are optional; with neither set it returns an empty map.
func (a *Analyzer) Resolve(ctx context.Context, githubURL, deploymentURL string) (map[string]any, error) {
	out := map[string]any{
		"summary":        "",
		"tech_stack":     []string{},
		"architecture":   "",
		"readme":         "",
		"file_structure": []map[string]any{},
	}

	if githubURL = strings.TrimSpace(githubURL); githubURL != "" {
		if err := a.analyzeRepo(ctx, githubURL, out); err != nil {
			a.logger.Warn("github analysis failed", zap.String("url", githubURL), zap.Error(err))
		}
	}

	if deploymentURL = strings.TrimSpace(deploymentURL); deploymentURL != "" {
		out["deployment_info"] = a.probeDeployment(ctx, deploymentURL)
	}

	out["summary"] = summarize(out)
	return out, nil
}

func (a *Analyzer) analyzeRepo(ctx context.Context, url string, out map[string]any) error {
	m := repoURLRe.FindStringSubmatch(url)
	if m == nil {
		return fmt.Errorf("not a github repository url: %s", url)
	}
	owner, repo := m[1], strings.TrimSuffix(m[2], ".git")

	var repoInfo struct {
		Language    string `json:"language"`
		Description string `json:"description"`
	}
	if err := a.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s", a.APIURL, owner, repo), &repoInfo); err != nil {
		return err
	}
	out["description"] = repoInfo.Description

	stack := []string{}
	if repoInfo.Language != "" {
		stack = append(stack, repoInfo.Language)
	}

	var contents []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := a.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/contents", a.APIURL, owner, repo), &contents); err != nil {
		a.logger.Debug("fetching repository contents failed", zap.Error(err))
	}

	files := make([]map[string]any, 0, len(contents))
	names := make([]string, 0, len(contents))
	for _, item := range contents {
		files = append(files, map[string]any{"name": item.Name, "type": item.Type})
		names = append(names, item.Name)
	}
	out["file_structure"] = files
	out["architecture"] = inferArchitecture(names)
	out["tech_stack"] = append(stack, detectTechStack(names)...)

	var readme struct {
		Content string `json:"content"`
	}
	if err := a.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/readme", a.APIURL, owner, repo), &readme); err == nil {
		if decoded, decErr := base64.StdEncoding.DecodeString(strings.ReplaceAll(readme.Content, "\n", "")); decErr == nil {
			text := string(decoded)
			if len(text) > readmeMaxBytes {
				text = text[:readmeMaxBytes]
			}
			out["readme"] = text
		}
	}

	return nil
}

func (a *Analyzer) probeDeployment(ctx context.Context, url string) map[string]any {
	info := map[string]any{
		"accessible":            false,
		"response_time_ms":      int64(0),
		"technologies_detected": []string{},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return info
	}

	start := time.Now()
	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		a.logger.Debug("deployment probe failed", zap.String("url", url), zap.Error(err))
		return info
	}
	defer resp.Body.Close()

	info["accessible"] = resp.StatusCode == http.StatusOK
	info["response_time_ms"] = time.Since(start).Milliseconds()

	techs := []string{}
	if v := resp.Header.Get("X-Powered-By"); v != "" {
		techs = append(techs, v)
	}
	if v := resp.Header.Get("Server"); v != "" {
		techs = append(techs, v)
	}
	info["technologies_detected"] = techs

	return info
}

func (a *Analyzer) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

var techIndicators = map[string]string{
	"package.json":       "Node.js/JavaScript",
	"requirements.txt":   "Python",
	"Pipfile":            "Python",
	"pyproject.toml":     "Python",
	"Cargo.toml":         "Rust",
	"go.mod":             "Go",
	"pom.xml":            "Java/Maven",
	"build.gradle":       "Java/Gradle",
	"Gemfile":            "Ruby",
	"pubspec.yaml":       "Flutter/Dart",
	"docker-compose.yml": "Docker",
	"Dockerfile":         "Docker",
	"next.config.js":     "Next.js",
	"vite.config.js":     "Vite",
	"tsconfig.json":      "TypeScript",
}

func detectTechStack(names []string) []string {
	detected := []string{}
	seen := map[string]bool{}
	for _, name := range names {
		tech, ok := techIndicators[name]
		if !ok || seen[tech] {
			continue
		}
		seen[tech] = true
		detected = append(detected, tech)
	}
	return detected
}

func inferArchitecture(names []string) string {
	lower := map[string]bool{}
	for _, name := range names {
		lower[strings.ToLower(name)] = true
	}

	switch {
	case lower["backend"] && lower["frontend"]:
		return "Monorepo (Frontend + Backend)"
	case lower["src"]:
		return "Standard Application Structure"
	case lower["app"]:
		return "App-based Structure (possibly Framework)"
	case lower["lib"]:
		return "Library/Package Structure"
	default:
		return "Custom/Unknown Structure"
	}
}

func summarize(out map[string]any) string {
	var parts []string

	if desc, _ := out["description"].(string); desc != "" {
		parts = append(parts, "Project: "+desc)
	}
	if stack, _ := out["tech_stack"].([]string); len(stack) > 0 {
		limit := min(len(stack), 5)
		parts = append(parts, "Tech Stack: "+strings.Join(stack[:limit], ", "))
	}
	if arch, _ := out["architecture"].(string); arch != "" {
		parts = append(parts, "Architecture: "+arch)
	}
	if dep, _ := out["deployment_info"].(map[string]any); dep != nil {
		if accessible, _ := dep["accessible"].(bool); accessible {
			parts = append(parts, "Live deployment is accessible.")
		}
	}

	if len(parts) == 0 {
		return "Project analyzed."
	}
	return strings.Join(parts, " | ")
}
