package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/trash-castle/internal/game"
	"github.com/palemoky/trash-castle/internal/logger"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/protocol/codec"
)

const (
	// Redis key 前缀
	matchKeyPrefix = "match:"
	movesKeyPrefix = "moves:"
	seqKeyPrefix   = "moveseq:"
	winsKey        = "leaderboard:wins"

	// 对局数据过期时间
	matchExpiration = 7 * 24 * time.Hour
)

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping 检查连接
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// --- 对局存档 ---

// SaveMatch 保存对局快照
func (rs *RedisStore) SaveMatch(ctx context.Context, s game.Snapshot) error {
	if s.ID == "" {
		return errors.New("snapshot has no match id")
	}
	key := matchKeyPrefix + s.ID
	return rs.client.Set(ctx, key, codec.EncodeSnapshot(s), matchExpiration).Err()
}

// LoadMatch 加载对局快照，不存在时 ok 为 false
func (rs *RedisStore) LoadMatch(ctx context.Context, id string) (s game.Snapshot, ok bool, err error) {
	data, err := rs.client.Get(ctx, matchKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return s, false, nil
		}
		return s, false, err
	}

	s, err = codec.DecodeSnapshot(data)
	if err != nil {
		return s, false, fmt.Errorf("decode match %s: %w", id, err)
	}
	return s, true, nil
}

// DeleteMatch 删除对局快照和出牌记录
func (rs *RedisStore) DeleteMatch(ctx context.Context, id string) error {
	return rs.client.Del(ctx, matchKeyPrefix+id, movesKeyPrefix+id, seqKeyPrefix+id).Err()
}

// ListMatches 所有已保存的对局 ID，按字典序排列
func (rs *RedisStore) ListMatches(ctx context.Context) ([]string, error) {
	var ids []string
	iter := rs.client.Scan(ctx, 0, matchKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(matchKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// --- 出牌记录 ---

// AppendMove 追加一条出牌记录
//
// m.Seq 为 0 时由 Redis 计数器分配序号，读档续玩后序号接着往下编。
func (rs *RedisStore) AppendMove(ctx context.Context, matchID string, m movelog.Move) error {
	seqKey := seqKeyPrefix + matchID
	if m.Seq == 0 {
		seq, err := rs.client.Incr(ctx, seqKey).Result()
		if err != nil {
			return fmt.Errorf("分配出牌序号失败: %w", err)
		}
		m.Seq = int(seq)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("序列化出牌记录失败: %w", err)
	}
	key := movesKeyPrefix + matchID
	pipe := rs.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, matchExpiration)
	pipe.Expire(ctx, seqKey, matchExpiration)
	_, err = pipe.Exec(ctx)
	return err
}

// Moves 按顺序返回对局的全部出牌记录
func (rs *RedisStore) Moves(ctx context.Context, matchID string) ([]movelog.Move, error) {
	items, err := rs.client.LRange(ctx, movesKeyPrefix+matchID, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	moves := make([]movelog.Move, 0, len(items))
	for _, item := range items {
		var m movelog.Move
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("反序列化出牌记录失败: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// MoveRecorder 把引擎产生的记录写入 Redis
//
// Record 没有错误返回值，写入失败只记录日志，不影响对局。
type MoveRecorder struct {
	store   *RedisStore
	matchID string
	timeout time.Duration
}

// NewMoveRecorder 创建对局的出牌记录器
func NewMoveRecorder(store *RedisStore, matchID string) *MoveRecorder {
	return &MoveRecorder{store: store, matchID: matchID, timeout: 2 * time.Second}
}

func (mr *MoveRecorder) Record(m movelog.Move) {
	if m.Time.IsZero() {
		m.Time = time.Now()
	}
	ctx, cancel := context.WithTimeout(context.Background(), mr.timeout)
	defer cancel()
	if err := mr.store.AppendMove(ctx, mr.matchID, m); err != nil {
		logger.LogError("record move for match %s: %v", mr.matchID, err)
	}
}

// --- 胜场排行 ---

// WinnerEntry 排行榜条目
type WinnerEntry struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// RecordWin 玩家胜场加一，返回新的胜场数
func (rs *RedisStore) RecordWin(ctx context.Context, name string) (int, error) {
	wins, err := rs.client.ZIncrBy(ctx, winsKey, 1, name).Result()
	if err != nil {
		return 0, err
	}
	return int(wins), nil
}

// TopWinners 胜场最多的前 limit 名玩家
func (rs *RedisStore) TopWinners(ctx context.Context, limit int) ([]WinnerEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := rs.client.ZRevRangeWithScores(ctx, winsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]WinnerEntry, 0, len(results))
	for i, z := range results {
		name, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, WinnerEntry{Rank: i + 1, Name: name, Wins: int(z.Score)})
	}
	return entries, nil
}
