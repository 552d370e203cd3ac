package service

import (
	"context"
	"skillbloom_backend/internal/catalog"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSkillPathService(t *testing.T) *SkillPathService {
	t.Helper()
	db := newTestDB(t)
	mentor := NewMentorService(NewAIService(unavailableCompleter{}, time.Second), nil, nil)
	return NewSkillPathService(repository.NewSkillEnrollmentRepository(db, nil, 0), mentor)
}

func answers(flags ...bool) []TopicAnswer {
	out := make([]TopicAnswer, len(flags))
	for i := range flags {
		out[i] = TopicAnswer{Correct: &flags[i]}
	}
	return out
}

func TestSkillPath_ListPaths(t *testing.T) {
	svc := newSkillPathService(t)
	paths := svc.ListPaths()
	require.Len(t, paths, 5)
	assert.Equal(t, "fullstack", paths[0].ID)
}

func TestSkillPath_EnrollIdempotent(t *testing.T) {
	svc := newSkillPathService(t)
	ctx := context.Background()

	first, err := svc.Enroll(ctx, 1, "fullstack")
	require.NoError(t, err)
	assert.True(t, first.Created)
	path, _ := catalog.SkillPathByID("fullstack")
	assert.Equal(t, "Successfully enrolled in "+path.Title, first.Message)

	second, err := svc.Enroll(ctx, 1, "fullstack")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, "Already enrolled in this skill path", second.Message)
	assert.Equal(t, first.Enrollment.ID, second.Enrollment.ID)

	_, err = svc.Enroll(ctx, 1, "astronaut")
	assert.True(t, util.IsValidation(err))
}

func TestSkillPath_Progress(t *testing.T) {
	svc := newSkillPathService(t)
	ctx := context.Background()

	_, err := svc.SubmitAssessment(ctx, 7, "fullstack", "frontend", answers(true))
	assert.True(t, util.IsNotFound(err))
	_, err = svc.Progress(ctx, 7, "fullstack")
	assert.True(t, util.IsNotFound(err))

	_, err = svc.Enroll(ctx, 7, "fullstack")
	require.NoError(t, err)

	res, err := svc.SubmitAssessment(ctx, 7, "fullstack", "frontend", answers(true, true, false, true))
	require.NoError(t, err)
	assert.Equal(t, 75.0, res.Score)
	assert.Equal(t, catalog.ScoreFeedback(75), res.Message)

	_, err = svc.SubmitAssessment(ctx, 7, "fullstack", "backend", answers(true, false))
	require.NoError(t, err)

	e, err := svc.Progress(ctx, 7, "fullstack")
	require.NoError(t, err)
	assert.Equal(t, 40.0, e.Progress)
	assert.Equal(t, []string{"backend", "frontend"}, e.CompletedTopics)
	assert.Equal(t, 50.0, e.AssessmentResults["backend"].Score)

	// 同一主题再次提交只覆盖成绩
	_, err = svc.SubmitAssessment(ctx, 7, "fullstack", "backend", answers(true, true))
	require.NoError(t, err)
	e, err = svc.Progress(ctx, 7, "fullstack")
	require.NoError(t, err)
	assert.Equal(t, 40.0, e.Progress)
	assert.Len(t, e.CompletedTopics, 2)
	assert.Equal(t, 100.0, e.AssessmentResults["backend"].Score)
}

// interleaveWriter 在乐观更新执行前先抢先提交一次写入，前 times 次更新都会因版本不匹配而失败
func interleaveWriter(t *testing.T, db *gorm.DB, times int) *int {
	t.Helper()
	fired := 0
	err := db.Callback().Update().Before("gorm:update").Register("test:interleave_writer", func(tx *gorm.DB) {
		if fired >= times || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "skill_enrollments" {
			return
		}
		fired++
		tx.Session(&gorm.Session{NewDB: true}).Exec("UPDATE skill_enrollments SET version = version + 1")
	})
	require.NoError(t, err)
	return &fired
}

func TestSkillPath_SubmitRetriesAfterConflict(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSkillEnrollmentRepository(db, nil, 0)
	mentor := NewMentorService(NewAIService(unavailableCompleter{}, time.Second), nil, nil)
	svc := NewSkillPathService(repo, mentor)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, 11, "cloud_engineer")
	require.NoError(t, err)
	topic := "cloud_platforms"

	fired := interleaveWriter(t, db, 1)
	res, err := svc.SubmitAssessment(ctx, 11, "cloud_engineer", topic, answers(true))
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, 1, *fired)

	e, err := repo.FindByUserAndPath(ctx, 11, "cloud_engineer")
	require.NoError(t, err)
	assert.Equal(t, 3, e.Version)
	assert.Equal(t, 20.0, e.Progress)
	assert.Equal(t, []string{topic}, e.CompletedTopics)
}

func TestSkillPath_SubmitGivesUpAfterRepeatedConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSkillEnrollmentRepository(db, nil, 0)
	mentor := NewMentorService(NewAIService(unavailableCompleter{}, time.Second), nil, nil)
	svc := NewSkillPathService(repo, mentor)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, 12, "cloud_engineer")
	require.NoError(t, err)
	topic := "cloud_platforms"

	fired := interleaveWriter(t, db, enrollmentUpdateAttempts)
	_, err = svc.SubmitAssessment(ctx, 12, "cloud_engineer", topic, answers(true))
	assert.ErrorIs(t, err, util.ErrConcurrentUpdate)
	assert.Equal(t, enrollmentUpdateAttempts, *fired)

	e, err := repo.FindByUserAndPath(ctx, 12, "cloud_engineer")
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.Progress)
	assert.Empty(t, e.AssessmentResults)
}

func TestSkillPath_SubmitValidation(t *testing.T) {
	svc := newSkillPathService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		path    string
		topic   string
		answers []TopicAnswer
		field   string
	}{
		{"unknown path", "nope", "frontend", answers(true), "path_id"},
		{"missing topic", "fullstack", "", answers(true), "topic"},
		{"topic of another path", "fullstack", "hdl", answers(true), "topic"},
		{"no answers", "fullstack", "frontend", nil, "answers"},
		{"answer without flag", "fullstack", "frontend", []TopicAnswer{{}}, "answers[0].correct"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitAssessment(ctx, 1, tt.path, tt.topic, tt.answers)
			var ve *util.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestSkillPath_MentorGuidance(t *testing.T) {
	svc := newSkillPathService(t)
	ctx := context.Background()

	got, err := svc.MentorGuidance(ctx, "vlsi", "timing", "How do I prepare for an interview?")
	require.NoError(t, err)
	assert.Equal(t, catalog.CannedResponses("interview")[0], got)

	_, err = svc.MentorGuidance(ctx, "vlsi", "", "question")
	assert.True(t, util.IsValidation(err))
}
