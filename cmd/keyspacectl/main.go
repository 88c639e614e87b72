// Command keyspacectl runs a synthetic lookup workload against a Keyspace
// and exposes optional pprof/Prometheus endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/distkit/keyspace/keyspace"
	pmet "github.com/distkit/keyspace/metrics/prom"
	"github.com/distkit/keyspace/strategy"
)

// node is the CLI's synthetic node type: an id and an availability zone.
type node struct {
	id   string
	zone string
}

func (n node) ID() string   { return n.id }
func (n node) Zone() string { return n.zone }

func main() {
	var (
		nodeCount = flag.Int("nodes", 32, "initial node count")
		zoneCount = flag.Int("zones", 4, "number of availability zones, cycled across nodes")
		replFact  = flag.Int("r", 3, "replication factor")
		shardCnt  = flag.Int("shards", 0, "shard grid size (0 = auto from -r)")
		zoneDiv   = flag.Bool("zone-diverse", false, "require distinct zones per replica set")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "workload duration")

		keys  = flag.Int("keys", 1_000_000, "keyspace size for lookup keys")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		churn = flag.Int("churn", 0, "number of AddNode/RemoveNode cycles to run concurrently with lookups")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	metrics := pmet.New(nil, "keyspace", "ctl", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	zones := make([]string, *zoneCount)
	for i := range zones {
		zones[i] = "zone-" + strconv.Itoa(i)
	}
	nodes := make([]node, *nodeCount)
	for i := range nodes {
		nodes[i] = node{id: "node-" + strconv.Itoa(i), zone: zones[i%len(zones)]}
	}

	opt := keyspace.Options[node, string]{
		Nodes:             nodes,
		ReplicationFactor: *replFact,
		ShardCount:        *shardCnt,
		Metrics:           metrics,
	}
	if *zoneDiv {
		opt.Strategy = strategy.ZoneDiverse[node]{}
	}
	ks, err := keyspace.Build[node, string](opt)
	if err != nil {
		log.Fatalf("build keyspace: %v", err)
	}
	g := keyspace.NewGuarded[node, string](ks)

	keysMax := uint64(*keys - 1)
	seedBase := *seed
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	var lookups, failures uint64
	stop := make(chan struct{})

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, *zipfS, *zipfV, keysMax)
			for {
				select {
				case <-stop:
					return
				default:
				}
				key := "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
				atomic.AddUint64(&lookups, 1)
				if _, err := g.ReplicasSlice([]byte(key)); err != nil {
					atomic.AddUint64(&failures, 1)
				}
			}
		}(w)
	}

	if *churn > 0 {
		wg.Add(1)
		cycles := *churn
		pause := *duration / time.Duration(2*cycles+1)
		go func() {
			defer wg.Done()
			for i := 0; i < cycles; i++ {
				extra := node{id: "churn-" + strconv.Itoa(i), zone: zones[i%len(zones)]}
				if _, err := g.AddNode(extra); err != nil {
					log.Printf("AddNode: %v", err)
					continue
				}
				time.Sleep(pause)
				if _, err := g.RemoveNode(extra.id); err != nil {
					log.Printf("RemoveNode: %v", err)
				}
			}
		}()
	}

	time.Sleep(*duration)
	close(stop)
	wg.Wait()
	elapsed := time.Since(start)

	total := atomic.LoadUint64(&lookups)
	failed := atomic.LoadUint64(&failures)
	fmt.Printf("nodes=%d r=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		*nodeCount, *replFact, ks.ShardGrid().Count(), workersN, *keys, elapsed, seedBase)
	fmt.Printf("lookups=%d (%.0f ops/s) failures=%d\n",
		total, float64(total)/elapsed.Seconds(), failed)
	fmt.Printf("reads=%d writes=%d mutations=%d resident-nodes=%d\n",
		g.Reads(), g.Writes(), g.Mutations(), len(g.Nodes()))
}
