package gitlocal

import (
	"bufio"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/relvacode/iso8601"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/git"
)

const (
	prefix = "@@@PREFIX@@@"
	suffix = "@@@SUFFIX@@@"
	tag    = "~~~"
)

var _ git.Port = &Adapter{}

type AdapterOptions struct {
	LocalGitPath string
	OriginName   string // default to "origin"
}

type Adapter struct {
	opts AdapterOptions
}

func NewAdapter(opts AdapterOptions) *Adapter {
	if opts.OriginName == "" {
		opts.OriginName = "origin"
	}
	return &Adapter{
		opts: opts,
	}
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// extractProjectPathFromRemoteUrl returns the "namespace/project" part of a git remote url
// (ssh or https, nested GitLab groups are supported)
func extractProjectPathFromRemoteUrl(remoteUrl string) string {
	url := strings.TrimSuffix(strings.TrimSpace(remoteUrl), ".git")
	var path string
	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "ssh://"):
		url = url[strings.Index(url, "://")+3:]
		idx := strings.Index(url, "/")
		if idx < 0 {
			return ""
		}
		path = url[idx+1:]
	case strings.HasPrefix(url, "git@"):
		idx := strings.Index(url, ":")
		if idx < 0 {
			return ""
		}
		path = url[idx+1:]
	default:
		return ""
	}
	if strings.Count(path, "/") < 1 || strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return ""
	}
	return path
}

func (r *Adapter) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	if r.opts.LocalGitPath != "" && r.opts.LocalGitPath != "." {
		cmd.Dir = r.opts.LocalGitPath
	}
	return cmd
}

func (r *Adapter) execute(logger *slog.Logger, cmd *exec.Cmd) (string, error) {
	logger.Debug(fmt.Sprintf("executing command: %s...", cmd.String()))
	output, err := cmd.Output()
	if err != nil {
		if eerr, ok := err.(*exec.ExitError); ok {
			logger.Debug(fmt.Sprintf("bad exit code for command: %s", cmd.String()), slog.Int("code", eerr.ExitCode()), slog.String("stderr", string(eerr.Stderr)))
		}
		return "", fmt.Errorf("can't execute command %s: %w", cmd.String(), err)
	}
	return string(output), nil
}

func (r *Adapter) GuessProjectPath() string {
	logger := slog.Default().With("gitOperation", "guessProjectPath")
	output, err := r.execute(logger, r.command("remote", "get-url", r.opts.OriginName))
	if err != nil {
		logger.Warn("can't read the origin remote url", slog.String("err", err.Error()))
		return ""
	}
	return extractProjectPathFromRemoteUrl(lastLine(output))
}

func (r *Adapter) decode(output string) ([]*git.Tag, error) {
	res := []*git.Tag{}
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, prefix+tag) {
			continue
		}
		tmp := strings.Split(line, suffix)
		if len(tmp) != 2 {
			continue
		}
		tagDate, err := iso8601.ParseString(tmp[1])
		if err != nil {
			slog.Debug("bad iso8601 date parsing => ignoring", slog.String("date", tmp[1]), slog.String("err", err.Error()))
			continue
		}
		names := strings.Split(strings.TrimPrefix(tmp[0], prefix), tag)
		for _, tagName := range names {
			if tagName == "" {
				continue
			}
			res = append(res, git.NewTag(tagName, tagDate))
		}
	}
	return res, scanner.Err()
}

func (r *Adapter) GetContainedTags(branch string) ([]*git.Tag, error) {
	logger := slog.Default().With("branch", branch)
	format := fmt.Sprintf("%s(decorate:prefix=%s,suffix=%s,tag=%s,separator=)%s", "%", prefix, suffix, tag, "%cI")
	args := []string{"log", "--tags", "--simplify-by-decoration", "--pretty=" + format}
	if branch != "" {
		args = append(args, branch)
	}
	output, err := r.execute(logger, r.command(args...))
	if err != nil {
		return nil, err
	}
	tags, err := r.decode(output)
	if err != nil {
		return nil, fmt.Errorf("can't get the list of tags from git: %w", err)
	}
	return tags, nil
}
