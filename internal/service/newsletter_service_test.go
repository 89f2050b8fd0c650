package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/queue"
	"github.com/qs3c/market_admin_server/internal/repository"
	"github.com/qs3c/market_admin_server/internal/testutil"
)

func newTestNewsletterService(t *testing.T) (*NewsletterService, *gorm.DB, *queue.Queue) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	client, _ := testutil.SetupTestRedis(t)
	q := queue.NewQueue(client, "test_newsletter_queue")
	return NewNewsletterService(repository.NewNewsletterRepository(db), q), db, q
}

func TestNewsletterService_SaveTemplate(t *testing.T) {
	svc, _, _ := newTestNewsletterService(t)

	tmpl, err := svc.SaveTemplate(&dto.SaveTemplateRequest{
		Slug:     "welcome",
		Subject:  "欢迎来到闲置集市",
		HTMLBody: "<p>你好</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "welcome", tmpl.Slug)

	// 同 slug 再次保存是覆盖，不是新建
	tmpl, err = svc.SaveTemplate(&dto.SaveTemplateRequest{
		Slug:     "welcome",
		Subject:  "欢迎（新版）",
		HTMLBody: "<p>你好呀</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "欢迎（新版）", tmpl.Subject)

	tmpls, err := svc.ListTemplates()
	require.NoError(t, err)
	assert.Len(t, tmpls, 1)
}

func TestNewsletterService_DeleteTemplate(t *testing.T) {
	svc, _, _ := newTestNewsletterService(t)

	_, err := svc.SaveTemplate(&dto.SaveTemplateRequest{Slug: "welcome", Subject: "s", HTMLBody: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTemplate("welcome"))
	assert.ErrorIs(t, svc.DeleteTemplate("welcome"), ErrTemplateNotFound)
}

func TestNewsletterService_QueueSend(t *testing.T) {
	svc, db, q := newTestNewsletterService(t)
	ctx := context.Background()

	n, err := svc.CreateNewsletter(&dto.CreateNewsletterRequest{
		Subject:  "八月社区通讯",
		HTMLBody: "<p>本月动态</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, model.NewsletterStatusDraft, n.Status)

	require.NoError(t, svc.QueueSend(ctx, n.ID, 1))

	// 状态变更并且队列里有一条任务
	got, err := repository.NewNewsletterRepository(db).GetNewsletterByID(n.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NewsletterStatusQueued, got.Status)

	msg, err := q.Pop(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, n.ID, msg.NewsletterID)
	assert.Equal(t, int64(1), msg.QueuedBy)

	// 已入队的不能重复入队
	assert.ErrorIs(t, svc.QueueSend(ctx, n.ID, 1), ErrAlreadyQueued)
}

func TestNewsletterService_QueueSend_AlreadySent(t *testing.T) {
	svc, db, _ := newTestNewsletterService(t)

	n := testutil.TestNewsletter(t, db, model.NewsletterStatusSent)
	assert.ErrorIs(t, svc.QueueSend(context.Background(), n.ID, 1), ErrAlreadySent)
}

func TestNewsletterService_QueueSend_NotFound(t *testing.T) {
	svc, _, _ := newTestNewsletterService(t)
	assert.ErrorIs(t, svc.QueueSend(context.Background(), 99999, 1), ErrNewsletterNotFound)
}
