package service

import (
	"context"
	"testing"
	"time"

	"shortlink-hub/internal/apperrors"
	"shortlink-hub/internal/dto"
	"shortlink-hub/internal/model"
	"shortlink-hub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = uint(1)
	strangerID = uint(2)
)

func createLink(t *testing.T, req dto.CreateShortLinkRequest) *model.ShortLink {
	t.Helper()
	link, err := CreateShortLink(context.Background(), req, ownerID)
	require.NoError(t, err)
	return link
}

func TestCreateShortLink_Defaults(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{TargetURL: "https://example.com"})

	assert.Equal(t, "https://example.com", link.TargetURL)
	assert.True(t, link.IsActive)
	assert.Equal(t, int64(0), link.ClickCount)
	assert.Equal(t, ownerID, link.CreatedBy)
	assert.Regexp(t, `^[a-z]{6}$`, link.ShortCode)
	assert.Nil(t, link.ExpiresAt)
}

func TestCreateShortLink_InvalidURL(t *testing.T) {
	setupTestDB(t)

	for _, bad := range []string{"not a url", "ftp://x", ""} {
		_, err := CreateShortLink(context.Background(), dto.CreateShortLinkRequest{TargetURL: bad}, ownerID)
		require.Error(t, err, "url %q", bad)
		assert.Equal(t, apperrors.ReasonInvalidURL, apperrors.Reason(err))
	}

	// 校验失败不落库
	var count int64
	require.NoError(t, repository.DB.Model(&model.ShortLink{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateShortLink_CustomCode(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{
		TargetURL: "https://example.com",
		ShortCode: "mycode",
	})
	assert.Equal(t, "mycode", link.ShortCode)

	// 重复短码冲突，且不写新记录
	_, err := CreateShortLink(context.Background(), dto.CreateShortLinkRequest{
		TargetURL: "https://other.example.com",
		ShortCode: "mycode",
	}, ownerID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonCodeConflict, apperrors.Reason(err))

	var count int64
	require.NoError(t, repository.DB.Model(&model.ShortLink{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateShortLink_MalformedCustomCode(t *testing.T) {
	setupTestDB(t)

	for _, bad := range []string{"ABC", "abc1234", "短码abc"} {
		_, err := CreateShortLink(context.Background(), dto.CreateShortLinkRequest{
			TargetURL: "https://example.com",
			ShortCode: bad,
		}, ownerID)
		require.Error(t, err, "code %q", bad)
	}
}

func TestCreateShortLink_FieldsRoundTrip(t *testing.T) {
	setupTestDB(t)

	expires := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	inactive := false

	link := createLink(t, dto.CreateShortLinkRequest{
		TargetURL:   "https://example.com",
		Title:       "My link",
		Description: "A test link",
		Tags:        []string{"blog", "misc"},
		ExpiresAt:   expires.Format(time.RFC3339),
		IsActive:    &inactive,
	})

	var stored model.ShortLink
	require.NoError(t, repository.DB.First(&stored, link.ID).Error)
	assert.Equal(t, "My link", stored.Title)
	assert.Equal(t, "A test link", stored.Description)
	assert.ElementsMatch(t, []string{"blog", "misc"}, stored.Tags)
	assert.False(t, stored.IsActive)
	require.NotNil(t, stored.ExpiresAt)
	assert.WithinDuration(t, expires, *stored.ExpiresAt, time.Second)
}

func TestResolveShortCode_IncrementsOncePerCall(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{TargetURL: "https://example.com"})

	for i := 0; i < 5; i++ {
		url, err := ResolveShortCode(context.Background(), link.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", url)
	}

	var stored model.ShortLink
	require.NoError(t, repository.DB.First(&stored, link.ID).Error)
	assert.Equal(t, int64(5), stored.ClickCount)
}

func TestResolveShortCode_Unknown(t *testing.T) {
	setupTestDB(t)

	_, err := ResolveShortCode(context.Background(), "zzzzzz")
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotFound, apperrors.Reason(err))
}

func TestResolveShortCode_Inactive(t *testing.T) {
	setupTestDB(t)

	inactive := false
	link := createLink(t, dto.CreateShortLinkRequest{
		TargetURL: "https://example.com",
		IsActive:  &inactive,
	})

	_, err := ResolveShortCode(context.Background(), link.ShortCode)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonInactive, apperrors.Reason(err))

	var stored model.ShortLink
	require.NoError(t, repository.DB.First(&stored, link.ID).Error)
	assert.Equal(t, int64(0), stored.ClickCount)
}

func TestResolveShortCode_Expired(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{
		TargetURL: "https://example.com",
		ExpiresAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
	})

	_, err := ResolveShortCode(context.Background(), link.ShortCode)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonExpired, apperrors.Reason(err))

	var stored model.ShortLink
	require.NoError(t, repository.DB.First(&stored, link.ID).Error)
	assert.Equal(t, int64(0), stored.ClickCount)
}

func TestGetShortLink_Ownership(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{TargetURL: "https://example.com"})

	got, err := GetShortLink(context.Background(), link.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, link.ShortCode, got.ShortCode)

	_, err = GetShortLink(context.Background(), link.ID, strangerID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonForbidden, apperrors.Reason(err))

	_, err = GetShortLink(context.Background(), link.ID+999, ownerID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotFound, apperrors.Reason(err))
}

func TestUpdateShortLink(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{
		TargetURL: "https://example.com",
		Title:     "before",
	})

	newURL := "https://updated.example.com"
	newTitle := "after"
	expires := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second).Format(time.RFC3339)

	updated, err := UpdateShortLink(context.Background(), link.ID, ownerID, dto.UpdateShortLinkRequest{
		TargetURL: &newURL,
		Title:     &newTitle,
		ExpiresAt: &expires,
	})
	require.NoError(t, err)
	assert.Equal(t, newURL, updated.TargetURL)
	assert.Equal(t, newTitle, updated.Title)
	require.NotNil(t, updated.ExpiresAt)

	// 短码与创建者不可变
	assert.Equal(t, link.ShortCode, updated.ShortCode)
	assert.Equal(t, ownerID, updated.CreatedBy)
}

func TestUpdateShortLink_NonOwnerLeavesRecordUnchanged(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{
		TargetURL: "https://example.com",
		Title:     "original",
	})

	evil := "https://evil.example.com"
	_, err := UpdateShortLink(context.Background(), link.ID, strangerID, dto.UpdateShortLinkRequest{
		TargetURL: &evil,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonForbidden, apperrors.Reason(err))

	got, err := GetShortLink(context.Background(), link.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.TargetURL)
	assert.Equal(t, "original", got.Title)
}

func TestUpdateShortLink_InvalidURLRejected(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{TargetURL: "https://example.com"})

	bad := "ftp://x"
	_, err := UpdateShortLink(context.Background(), link.ID, ownerID, dto.UpdateShortLinkRequest{
		TargetURL: &bad,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonInvalidURL, apperrors.Reason(err))
}

func TestDeleteShortLink(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{TargetURL: "https://example.com"})

	// 非创建者不可删除
	err := DeleteShortLink(context.Background(), link.ID, strangerID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonForbidden, apperrors.Reason(err))

	require.NoError(t, DeleteShortLink(context.Background(), link.ID, ownerID))

	// 删除后详情与解析都报不存在
	_, err = GetShortLink(context.Background(), link.ID, ownerID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotFound, apperrors.Reason(err))

	_, err = ResolveShortCode(context.Background(), link.ShortCode)
	require.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotFound, apperrors.Reason(err))
}

func TestListShortLinks_ScopedAndPaged(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < 15; i++ {
		createLink(t, dto.CreateShortLinkRequest{TargetURL: "https://example.com"})
	}
	// 其他用户的记录不应出现在结果里
	_, err := CreateShortLink(context.Background(),
		dto.CreateShortLinkRequest{TargetURL: "https://example.com"}, strangerID)
	require.NoError(t, err)

	page1, err := ListShortLinks(context.Background(), ownerID, 1, 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(15), page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Len(t, page1.Data, 10)

	page2, err := ListShortLinks(context.Background(), ownerID, 2, 10, "", "")
	require.NoError(t, err)
	assert.Len(t, page2.Data, 5)

	// 新创建的排在前面
	assert.Greater(t, page1.Data[0].ID, page2.Data[0].ID)

	for _, link := range append(page1.Data, page2.Data...) {
		assert.Equal(t, ownerID, link.CreatedBy)
	}
}

func TestListShortLinks_SearchAndTag(t *testing.T) {
	setupTestDB(t)

	createLink(t, dto.CreateShortLinkRequest{
		TargetURL: "https://example.com/docs",
		Title:     "Release Notes",
		Tags:      []string{"docs"},
	})
	createLink(t, dto.CreateShortLinkRequest{
		TargetURL:   "https://example.com/blog",
		Description: "personal blog",
		Tags:        []string{"blog"},
	})

	// 标题大小写不敏感匹配
	res, err := ListShortLinks(context.Background(), ownerID, 1, 10, "release", "")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Release Notes", res.Data[0].Title)

	// 描述匹配
	res, err = ListShortLinks(context.Background(), ownerID, 1, 10, "personal", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	// 标签过滤
	res, err = ListShortLinks(context.Background(), ownerID, 1, 10, "", "blog")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.ElementsMatch(t, []string{"blog"}, res.Data[0].Tags)

	// 未命中
	res, err = ListShortLinks(context.Background(), ownerID, 1, 10, "nothing-matches", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.Empty(t, res.Data)
}

func TestEndToEnd_CreateResolveInspect(t *testing.T) {
	setupTestDB(t)

	link := createLink(t, dto.CreateShortLinkRequest{TargetURL: "https://example.com"})
	assert.Regexp(t, `^[a-z]{6}$`, link.ShortCode)
	assert.Equal(t, int64(0), link.ClickCount)
	assert.True(t, link.IsActive)

	url, err := ResolveShortCode(context.Background(), link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", url)

	got, err := GetShortLink(context.Background(), link.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ClickCount)
}
