package git

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type gitDummyAdapter struct {
	tags []*Tag
	err  error
}

func (d *gitDummyAdapter) GetContainedTags(branch string) ([]*Tag, error) {
	res := make([]*Tag, len(d.tags))
	copy(res, d.tags)
	return res, d.err
}

func (d *gitDummyAdapter) GuessProjectPath() string {
	return "foo/bar"
}

func TestGetLatestTag(t *testing.T) {
	now := time.Now()
	s := New(&gitDummyAdapter{
		tags: []*Tag{
			NewTag("v1.0.0", now),
			NewTag("v1.1.0-beta", now.Add(1*time.Hour)),
			NewTag("foo", now.Add(2*time.Hour)),
			NewTag("v1.0.1", now.Add(3*time.Hour)),
			NewTag("v0.9.0", now.Add(4*time.Hour)),
		},
	})
	tag, err := s.GetLatestTag("main", "")
	assert.Nil(t, err)
	assert.Equal(t, "v1.0.1", tag.Name)
}

func TestGetLatestTagWithRegex(t *testing.T) {
	now := time.Now()
	s := New(&gitDummyAdapter{
		tags: []*Tag{
			NewTag("v2.0.1", now.Add(1*time.Hour)),
			NewTag("v1.0.0", now),
		},
	})
	tag, err := s.GetLatestTag("main", "^v1.*")
	assert.Nil(t, err)
	assert.Equal(t, "v1.0.0", tag.Name)
	_, err = s.GetLatestTag("main", "(")
	assert.NotNil(t, err)
}

func TestGetLatestTagSameVersion(t *testing.T) {
	now := time.Now()
	s := New(&gitDummyAdapter{
		tags: []*Tag{
			NewTag("1.0.0", now.Add(1*time.Hour)),
			NewTag("v1.0.0", now),
		},
	})
	tag, err := s.GetLatestTag("", "")
	assert.Nil(t, err)
	assert.Equal(t, "1.0.0", tag.Name)
}

func TestGetLatestTagWithoutTag(t *testing.T) {
	s := New(&gitDummyAdapter{tags: []*Tag{NewTag("foo", time.Now())}})
	tag, err := s.GetLatestTag("", "")
	assert.Nil(t, err)
	assert.Nil(t, tag)
	s = New(&gitDummyAdapter{err: errors.New("boom")})
	_, err = s.GetLatestTag("", "")
	assert.NotNil(t, err)
}
