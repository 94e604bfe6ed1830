package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CustomizationKeyPrefix 与浏览器端 localStorage 使用的键名保持一致，后缀为用户 ID。
const CustomizationKeyPrefix = "resumeCustomization:"

type customizationKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CustomizationStore 在 Redis 中为每个用户保存一条定制记录。
type CustomizationStore struct {
	kv customizationKV
}

// NewCustomizationStore 构造 CustomizationStore。
func NewCustomizationStore(kv customizationKV) *CustomizationStore {
	return &CustomizationStore{kv: kv}
}

// Get 读取用户定制；键不存在或内容无法解析时返回默认值。
func (s *CustomizationStore) Get(ctx context.Context, userID uint) (Customization, error) {
	raw, err := s.kv.Get(ctx, customizationKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return DefaultCustomization(), nil
		}
		return Customization{}, fmt.Errorf("get customization: %w", err)
	}

	var stored Customization
	if err := json.Unmarshal(raw, &stored); err != nil {
		return DefaultCustomization(), nil
	}
	return DefaultCustomization().Merge(stored), nil
}

// Put 覆盖保存完整的定制记录。
func (s *CustomizationStore) Put(ctx context.Context, userID uint, c Customization) (Customization, error) {
	c = DefaultCustomization().Merge(c)
	payload, err := json.Marshal(c)
	if err != nil {
		return Customization{}, fmt.Errorf("encode customization: %w", err)
	}
	if err := s.kv.Set(ctx, customizationKey(userID), payload, 0).Err(); err != nil {
		return Customization{}, fmt.Errorf("set customization: %w", err)
	}
	return c, nil
}

// Patch 合并非空字段后整体保存，对应 setTemplate/setHeadingColor 等单字段设置。
func (s *CustomizationStore) Patch(ctx context.Context, userID uint, patch Customization) (Customization, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Customization{}, err
	}
	return s.Put(ctx, userID, current.Merge(patch))
}

func customizationKey(userID uint) string {
	return CustomizationKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}
