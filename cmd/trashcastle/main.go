package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/trash-castle/internal/config"
	"github.com/palemoky/trash-castle/internal/game"
	"github.com/palemoky/trash-castle/internal/logger"
	"github.com/palemoky/trash-castle/internal/movelog"
	"github.com/palemoky/trash-castle/internal/storage"
	"github.com/palemoky/trash-castle/internal/view"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	seed := flag.Uint64("seed", 0, "随机数种子，0 表示使用配置文件或当前时间")
	verbose := flag.Bool("v", false, "日志输出到终端，并在每回合后校验对局状态")
	resume := flag.String("resume", "", "从 Redis 恢复指定 ID 的对局")
	standings := flag.Bool("standings", false, "显示胜场排行榜后退出")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	cfg.Log.Verbose = cfg.Log.Verbose || *verbose

	initLogger(cfg.Log)
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			log.Fatalf("意外错误: %v", r)
		}
	}()

	store := connectRedis(cfg.Redis)

	if *standings {
		if store == nil {
			log.Fatal("排行榜需要启用 Redis")
		}
		showStandings(store)
		return
	}

	moves := movelog.NewMemoryLog()
	gs, err := openMatch(cfg, store, *resume, moves)
	if err != nil {
		log.Fatalf("创建对局失败: %v", err)
	}
	logger.LogInfo("match %s started with seed %d", gs.ID(), gs.Seed())

	// 优雅关闭；每回合结束时已经自动保存
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		fmt.Printf("\n对局 %s 已中断\n", gs.ID())
		logger.Close()
		os.Exit(0)
	}()

	s := &session{
		gs:      gs,
		store:   store,
		moves:   moves,
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		verbose: cfg.Log.Verbose,
	}
	if err := s.run(); err != nil {
		log.Fatalf("对局异常结束: %v", err)
	}
}

func initLogger(cfg config.LogConfig) {
	switch {
	case cfg.Verbose:
		logger.InitWithWriter(os.Stderr)
	case cfg.Dir != "":
		if err := logger.InitDir(cfg.Dir); err != nil {
			log.Printf("初始化日志失败: %v", err)
		}
	default:
		if err := logger.Init(); err != nil {
			log.Printf("初始化日志失败: %v", err)
		}
	}
}

// connectRedis 未启用或连接失败时返回 nil，对局照常进行
func connectRedis(cfg config.RedisConfig) *storage.RedisStore {
	if !cfg.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	store := storage.NewRedisStore(client)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Printf("Redis 连接失败，不保存对局: %v", err)
		_ = client.Close()
		return nil
	}
	logger.LogInfo("connected to redis at %s", cfg.Addr)
	return store
}

func openMatch(cfg *config.Config, store *storage.RedisStore, resume string, moves *movelog.MemoryLog) (*game.GameState, error) {
	if resume == "" {
		id := uuid.NewString()
		recorders := movelog.MultiRecorder{moves}
		if store != nil {
			recorders = append(recorders, storage.NewMoveRecorder(store, id))
		}
		return game.New(cfg.Game, game.WithID(id), game.WithRecorder(recorders))
	}

	if store == nil {
		return nil, fmt.Errorf("resuming match %s requires redis", resume)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	snap, ok, err := store.LoadMatch(ctx, resume)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("match %s not found", resume)
	}
	return game.Restore(snap, game.WithRecorder(movelog.MultiRecorder{
		moves,
		storage.NewMoveRecorder(store, resume),
	}))
}

func showStandings(store *storage.RedisStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	entries, err := store.TopWinners(ctx, 10)
	if err != nil {
		log.Fatalf("读取排行榜失败: %v", err)
	}
	fmt.Println(view.RenderStandings(entries))
}
