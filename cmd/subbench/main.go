// subbench measures the subscription write and read paths against a real
// database: N users subscribing to one popular author, then paged reads of
// the subscription list. Knobs via env: N, CONC, PAGE.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/foodgram-backend/config"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
	"github.com/d60-Lab/foodgram-backend/internal/service"
	"github.com/d60-Lab/foodgram-backend/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	if err := database.Migrate(db); err != nil {
		panic(err)
	}

	subRepo := repository.NewSubscriptionRepository(db)
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	subSvc := service.NewSubscriptionService(subRepo, userRepo, recipeRepo)

	ctx := context.Background()

	N := envInt("N", 10000)
	CONC := envInt("CONC", 1)
	PAGE := envInt("PAGE", 50)

	// seed: one popular author plus N readers
	author := model.User{Username: "author0", Email: "author0@example.com", FirstName: "A", LastName: "B", Password: "p"}
	_ = db.Where("username = ?", author.Username).FirstOrCreate(&author).Error
	users := make([]model.User, N)
	for i := range users {
		id := uuid.New().String()[:8]
		users[i] = model.User{Username: "u" + id, Email: id + "@example.com", FirstName: "U", LastName: id, Password: "p"}
	}
	if err := db.CreateInBatches(&users, 1000).Error; err != nil {
		panic(err)
	}

	// write path through the service, which also builds the author payload
	workers := CONC
	if workers > N {
		workers = N
	}
	feed := make(chan int, N)
	for i := 0; i < N; i++ {
		feed <- i
	}
	close(feed)

	latCh := make(chan time.Duration, N)
	done := make(chan struct{}, workers)
	t0 := time.Now()
	for w := 0; w < workers; w++ {
		go func() {
			for i := range feed {
				st := time.Now()
				_, _ = subSvc.Subscribe(ctx, users[i].ID, author.ID, 3)
				latCh <- time.Since(st)
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	close(latCh)
	writeLat := make([]time.Duration, 0, N)
	for d := range latCh {
		writeLat = append(writeLat, d)
	}
	writeDur := time.Since(t0)

	// bare repository writes for comparison, reversed direction
	t1 := time.Now()
	for i := 0; i < N; i++ {
		_ = subRepo.Create(ctx, author.ID, users[i].ID)
	}
	repoDur := time.Since(t1)

	// read path: first and deep pages of the author's reading list
	q0 := time.Now()
	_, _, _ = subRepo.ListAuthors(ctx, author.ID, 0, PAGE)
	firstDur := time.Since(q0)

	q1 := time.Now()
	_, _, _ = subRepo.ListAuthors(ctx, author.ID, N-PAGE, PAGE)
	deepDur := time.Since(q1)

	pct := func(vs []time.Duration, p float64) time.Duration {
		if len(vs) == 0 {
			return 0
		}
		xs := append([]time.Duration(nil), vs...)
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		k := int(math.Ceil(p*float64(len(xs)))) - 1
		if k < 0 {
			k = 0
		}
		if k >= len(xs) {
			k = len(xs) - 1
		}
		return xs[k]
	}

	fmt.Printf("N=%d, CONC=%d, PAGE=%d\n", N, CONC, PAGE)
	fmt.Printf("Service subscribe total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		writeDur, writeDur/time.Duration(N), pct(writeLat, 0.50), pct(writeLat, 0.95), pct(writeLat, 0.99))
	fmt.Printf("Repo create total: %v, per op: %v\n", repoDur, repoDur/time.Duration(N))
	fmt.Printf("ListAuthors first page(%d): %v\n", PAGE, firstDur)
	fmt.Printf("ListAuthors deep page(%d): %v\n", PAGE, deepDur)
}
