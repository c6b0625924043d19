package cli

import (
	"flag"
	"os"
	"testing"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/git"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/mr/mrcache"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/mr/mrenv"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/mr/mrgithub"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/infra/adapters/mr/mrgitlab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type gitDummyAdapter struct{}

func (d *gitDummyAdapter) GetContainedTags(branch string) ([]*git.Tag, error) {
	return nil, nil
}

func (d *gitDummyAdapter) GuessProjectPath() string {
	return "foo/bar"
}

// unsetenv removes an environment variable for the duration of the test
// (urfave/cli considers a variable set to "" as defined).
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func cleanEnv(t *testing.T) {
	for _, key := range []string{"CI_MERGE_REQUEST_LABELS", "GITLAB_MR_BUMP_MAJOR_LABEL", "GITLAB_MR_BUMP_MINOR_LABEL", "GMRT_SOURCE", "GITLAB_TOKEN", "GMRT_PROJECT", "CI_PROJECT_ID", "GMRT_CACHE_LOCATION"} {
		unsetenv(t, key)
	}
}

func parseContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range newCommonCliFlags() {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func newContext(t *testing.T, args ...string) *cli.Context {
	cleanEnv(t)
	return parseContext(t, args...)
}

func TestSplitGithubProject(t *testing.T) {
	owner, repo := splitGithubProject("foo/bar")
	assert.Equal(t, "foo", owner)
	assert.Equal(t, "bar", repo)
	owner, repo = splitGithubProject("foo/bar/baz")
	assert.Equal(t, "", owner)
	assert.Equal(t, "", repo)
	owner, _ = splitGithubProject("/bar")
	assert.Equal(t, "", owner)
}

func TestGetAppConfig(t *testing.T) {
	cCtx := newContext(t, "--major-label", "release:major", "--trim-spaces")
	config := getAppConfig(cCtx)
	assert.Equal(t, "release:major", config.MajorLabel)
	assert.Equal(t, "", config.MinorLabel)
	assert.True(t, config.TrimSpaces)
	assert.Equal(t, "bumpMinor", config.ReleaseConfig().MinorLabel)
}

func TestGetMrAdapter(t *testing.T) {
	adapter, err := getMrAdapter(newContext(t, "--labels", "bumpMajor"), nil)
	require.NoError(t, err)
	assert.IsType(t, &mrenv.Adapter{}, adapter)
	m, err := adapter.GetMergeRequest()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "bumpMajor", m.RawLabels)

	adapter, err = getMrAdapter(newContext(t, "--source", "gitlab", "--gitlab-token", "secret", "--mr-iid", "12"), &gitDummyAdapter{})
	assert.Nil(t, err)
	assert.IsType(t, &mrgitlab.Adapter{}, adapter)

	adapter, err = getMrAdapter(newContext(t, "--source", "github", "--pr-number", "12", "--cache-location", t.TempDir()), &gitDummyAdapter{})
	assert.Nil(t, err)
	assert.IsType(t, &mrcache.Adapter{}, adapter)

	adapter, err = getMrAdapter(newContext(t, "--source", "github", "--project", "foo/bar"), nil)
	assert.Nil(t, err)
	assert.IsType(t, &mrgithub.Adapter{}, adapter)

	_, err = getMrAdapter(newContext(t, "--source", "gitlab", "--mr-iid", "12"), &gitDummyAdapter{})
	assert.NotNil(t, err)
	_, err = getMrAdapter(newContext(t, "--source", "foo"), nil)
	assert.NotNil(t, err)
}

func TestGetMrAdapterWithEmptySourceVariable(t *testing.T) {
	cleanEnv(t)
	t.Setenv("GMRT_SOURCE", "")
	t.Setenv("CI_MERGE_REQUEST_LABELS", "bumpMajor")
	cCtx := parseContext(t)
	assert.Equal(t, "", cCtx.String("source"))
	adapter, err := getMrAdapter(cCtx, nil)
	require.NoError(t, err)
	assert.IsType(t, &mrenv.Adapter{}, adapter)
	m, err := adapter.GetMergeRequest()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "bumpMajor", m.RawLabels)
}
