package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonKeywords_SharedMeaningfulTerms(t *testing.T) {
	resume := "Experienced backend developer building microservices architecture"
	job := "We want a backend developer familiar with microservices"

	got := CommonKeywords(resume, job)

	assert.Equal(t, []string{"backend", "developer", "microservices"}, got)
}

func TestCommonKeywords_IntersectionIsCaseSensitive(t *testing.T) {
	// "Python" and "python" are different raw tokens, so only "developer"
	// survives the intersection.
	got := CommonKeywords("Python developer", "python developer")

	assert.Equal(t, []string{"developer"}, got)
}

func TestCommonKeywords_FiltersNoise(t *testing.T) {
	cases := []struct {
		name   string
		resume string
		job    string
		want   []string
	}{
		{
			name:   "stopwords and filler dropped",
			resume: "the candidate has experience scaling databases",
			job:    "the candidate needs experience scaling databases",
			want:   []string{"databases", "scaling"},
		},
		{
			name:   "short tokens dropped",
			resume: "go on golang",
			job:    "go golang",
			want:   []string{"golang"},
		},
		{
			name:   "non alphabetic tokens dropped",
			resume: "c++ 2024 node.js distributed",
			job:    "c++ 2024 node.js distributed",
			want:   []string{"distributed"},
		},
		{
			name:   "no overlap",
			resume: "kafka pipelines",
			job:    "frontend styling",
			want:   []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CommonKeywords(tc.resume, tc.job)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCommonKeywords_SortedAndDeduplicated(t *testing.T) {
	resume := "Zookeeper Ansible ansible zookeeper Ansible"
	job := "zookeeper Ansible ansible Zookeeper"

	got := CommonKeywords(resume, job)

	assert.Equal(t, []string{"ansible", "zookeeper"}, got)
}
