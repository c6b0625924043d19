package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/git"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/mr"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/mr/mrcache"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/mr/mrenv"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/mr/mrgithub"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/mr/mrgitlab"
	"github.com/fabien-marty/slog-helpers/pkg/slogc"
	"github.com/urfave/cli/v2"
)

const (
	sourceEnv    = "env"
	sourceGitlab = "gitlab"
	sourceGithub = "github"
)

// newCommonCliFlags returns new flag instances
// (urfave/cli stores the environment values in the flags when applying them).
func newCommonCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "INFO",
			Usage:   "log level (DEBUG, INFO, WARN, ERROR)",
			EnvVars: []string{"LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text-human",
			Usage:   "log format (text-human, text, json, json-gcp)",
			EnvVars: []string{"LOG_FORMAT"},
		},
		&cli.StringFlag{
			Name:    "labels",
			Usage:   "Comma separated list of the merge request labels (source=env only)",
			EnvVars: []string{mrenv.LabelsEnvVar},
		},
		&cli.StringFlag{
			Name:    "major-label",
			Value:   "",
			Usage:   "Label to consider the merge request as major (default: bumpMajor)",
			EnvVars: []string{"GITLAB_MR_BUMP_MAJOR_LABEL"},
		},
		&cli.StringFlag{
			Name:    "minor-label",
			Value:   "",
			Usage:   "Label to consider the merge request as minor (default: bumpMinor)",
			EnvVars: []string{"GITLAB_MR_BUMP_MINOR_LABEL"},
		},
		&cli.BoolFlag{
			Name:    "trim-spaces",
			Value:   false,
			Usage:   "if set, remove spaces around labels before matching (\"a, b\" => \"a\" and \"b\" instead of \"a\" and \" b\")",
			EnvVars: []string{"GMRT_TRIM_SPACES"},
		},
		&cli.StringFlag{
			Name:    "source",
			Value:   sourceEnv,
			Usage:   "where to read the merge request labels from (env, gitlab, github)",
			EnvVars: []string{"GMRT_SOURCE"},
		},
		&cli.StringFlag{
			Name:    "gitlab-token",
			Usage:   "gitlab token (source=gitlab only)",
			EnvVars: []string{"GITLAB_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "gitlab-url",
			Usage:   "gitlab instance url (source=gitlab only, default to https://gitlab.com)",
			EnvVars: []string{"CI_SERVER_URL"},
		},
		&cli.StringFlag{
			Name:    "project",
			Usage:   "gitlab project id or path, github owner/repo; if not set, we are going to try to guess from the origin remote",
			EnvVars: []string{"GMRT_PROJECT", "CI_PROJECT_ID"},
		},
		&cli.IntFlag{
			Name:    "mr-iid",
			Usage:   "merge request iid (source=gitlab only)",
			EnvVars: []string{"CI_MERGE_REQUEST_IID"},
		},
		&cli.StringFlag{
			Name:    "github-token",
			Usage:   "github token (source=github only)",
			EnvVars: []string{"GITHUB_TOKEN"},
		},
		&cli.IntFlag{
			Name:    "pr-number",
			Usage:   "pull request number (source=github only)",
			EnvVars: []string{"GMRT_PR_NUMBER"},
		},
		&cli.StringFlag{
			Name:    "cache-location",
			Value:   "",
			Usage:   "if set, cache the merge requests read from the API in this directory",
			EnvVars: []string{"GMRT_CACHE_LOCATION"},
		},
		&cli.IntFlag{
			Name:    "cache-lifetime",
			Value:   3600,
			Usage:   "lifetime (in seconds) of cached merge requests",
			EnvVars: []string{"GMRT_CACHE_LIFETIME"},
		},
		&cli.BoolFlag{
			Name:    "fail-if-no-release",
			Value:   false,
			Usage:   "if set, exit with code 2 when no release has to be done",
			EnvVars: []string{"GMRT_FAIL_IF_NO_RELEASE"},
		},
	}
}

func setDefaultLogger(cCtx *cli.Context) {
	logger := slogc.GetLogger(
		slogc.WithLevel(slogc.GetLogLevelFromString(cCtx.String("log-level"))),
		slogc.WithLogFormat(slogc.GetLogFormatFromString(cCtx.String("log-format"))),
	)
	slog.SetDefault(logger)
}

func getAppConfig(cCtx *cli.Context) app.Config {
	return app.Config{
		MajorLabel: cCtx.String("major-label"),
		MinorLabel: cCtx.String("minor-label"),
		TrimSpaces: cCtx.Bool("trim-spaces"),
		TagRegex:   cCtx.String("tag-regex"),
	}
}

// splitGithubProject splits "owner/repo"
func splitGithubProject(project string) (owner string, repo string) {
	tmp := strings.Split(project, "/")
	if len(tmp) != 2 || tmp[0] == "" || tmp[1] == "" {
		return "", ""
	}
	return tmp[0], tmp[1]
}

func getProject(cCtx *cli.Context, gitAdapter git.Port) string {
	project := cCtx.String("project")
	if project == "" && gitAdapter != nil {
		project = gitAdapter.GuessProjectPath()
		slog.Debug("guessed project path: " + project)
	}
	return project
}

func withCache(cCtx *cli.Context, key string, adapter mr.Port) mr.Port {
	if cCtx.String("cache-location") == "" {
		return adapter
	}
	return mrcache.NewAdapter(key, adapter, mrcache.AdapterOptions{
		CacheLocation: cCtx.String("cache-location"),
		CacheLifetime: cCtx.Int("cache-lifetime"),
	})
}

// getMrAdapter returns the merge request adapter corresponding to the source flag
// (gitAdapter can be nil, it is only used to guess the project)
func getMrAdapter(cCtx *cli.Context, gitAdapter git.Port) (mr.Port, error) {
	switch cCtx.String("source") {
	case sourceEnv, "":
		return mrenv.NewAdapter(mrenv.AdapterOptions{Labels: cCtx.String("labels")}), nil
	case sourceGitlab:
		project := getProject(cCtx, gitAdapter)
		if project == "" {
			return nil, cli.Exit("Can't guess the gitlab project => please provide it with --project", 1)
		}
		adapter, err := mrgitlab.NewAdapter(project, cCtx.Int("mr-iid"), mrgitlab.AdapterOptions{
			Token:   cCtx.String("gitlab-token"),
			BaseURL: cCtx.String("gitlab-url"),
		})
		if err != nil {
			return nil, cli.Exit(err.Error(), 1)
		}
		return withCache(cCtx, adapter.Key(), adapter), nil
	case sourceGithub:
		owner, repo := splitGithubProject(getProject(cCtx, gitAdapter))
		if owner == "" || repo == "" {
			ghOwner, ghRepo := guessGHRepoFromEnv()
			owner, repo = ghOwner, ghRepo
		}
		if owner == "" || repo == "" {
			return nil, cli.Exit("Can't guess the repository owner and name => please provide them with --project owner/repo", 1)
		}
		adapter := mrgithub.NewAdapter(owner, repo, cCtx.Int("pr-number"), mrgithub.AdapterOptions{Token: cCtx.String("github-token")})
		return withCache(cCtx, adapter.Key(), adapter), nil
	default:
		return nil, cli.Exit(fmt.Sprintf("Unknown source: %s (must be env, gitlab or github)", cCtx.String("source")), 1)
	}
}

func guessGHRepoFromEnv() (owner string, repo string) {
	ghOwner := os.Getenv("GITHUB_REPOSITORY_OWNER")
	ghRepository := os.Getenv("GITHUB_REPOSITORY")
	if ghOwner != "" && strings.HasPrefix(ghRepository, ghOwner+"/") {
		// we are in a GitHub Actions environment
		return ghOwner, ghRepository[len(ghOwner)+1:]
	}
	return "", ""
}

// exitCodeIfNoRelease returns the error to return when there is no release to do
func exitCodeIfNoRelease(cCtx *cli.Context) error {
	if cCtx.Bool("fail-if-no-release") {
		return cli.Exit("no release to do (no merge request labels found)", 2)
	}
	return nil
}

func runApp(cliApp *cli.App) {
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bad CLI arguments: %s\n", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
