// Package streamer runs chunk generation and meshing on a worker pool so
// the scheduler's render thread is never blocked waiting on either one.
// It is the "scene driving" boundary collaborator named out of the
// core's scope but called out because it borders it: the worker pool
// shape is grounded on the teacher's internal/meshing.WorkerPool, and
// the invariant it exists to uphold is §5's — voxel tensors and geometry
// buffers are mutated only at a tick boundary, never concurrently.
package streamer

import (
	"context"
	"sync"

	"voxelcore/internal/logging"
	"voxelcore/internal/mesher"
	"voxelcore/internal/noise"
	"voxelcore/internal/registry"
	"voxelcore/internal/worldgen"
)

// ChunkCoord identifies a chunk by its column grid position.
type ChunkCoord struct{ X, Z int }

// Job requests a chunk be generated and meshed.
type Job struct {
	Coord ChunkCoord
}

// Result is a completed job: the meshed solid and water geometry of the
// generated chunk, or Err if either step failed.
type Result struct {
	Coord ChunkCoord
	Solid *mesher.Geometry
	Water *mesher.Geometry
	Err   error
}

// Pipeline owns a fixed pool of workers, each with its own
// worldgen.Generator and mesher.TerrainMesher — per §5's design note,
// the mesher's greedy-meshing scratch buffers are documented as
// per-worker state on a multi-threaded target, not a shared global.
type Pipeline struct {
	jobs    chan Job
	results chan Result

	chunkSizeX, chunkSizeY, chunkSizeZ int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPipeline starts numWorkers goroutines, each constructing its own
// Generator from the same world seed and its own TerrainMesher. Every
// worker must see the identical seed: §4.2 requires a column's terrain
// to be a pure function of (seed, x, z) regardless of which worker
// generates it, and §4.3's halo-border convention depends on a chunk's
// neighbor-read halo matching whatever that neighbor's own load would
// produce, even when a different worker picks it up.
func NewPipeline(numWorkers, queueSize int, seed int64, blocks registry.DefaultBlocks, reg *registry.Registry, chunkSizeX, chunkSizeY, chunkSizeZ int) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		jobs:       make(chan Job, queueSize),
		results:    make(chan Result, queueSize),
		chunkSizeX: chunkSizeX, chunkSizeY: chunkSizeY, chunkSizeZ: chunkSizeZ,
		ctx: ctx, cancel: cancel,
	}

	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(seed, blocks, reg)
	}
	return p
}

func (p *Pipeline) worker(seed int64, blocks registry.DefaultBlocks, reg *registry.Registry) {
	defer p.wg.Done()

	factory := noise.NewFactoryFromSeed(seed)
	gen := worldgen.NewGenerator(factory, blocks)
	tm := mesher.NewTerrainMesher()

	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.process(gen, tm, reg, job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pipeline) process(gen *worldgen.Generator, tm *mesher.TerrainMesher, reg *registry.Registry, job Job) {
	defer func() {
		if r := recover(); r != nil {
			logging.StreamError("mesh", panicError{r})
			p.emit(Result{Coord: job.Coord, Err: panicError{r}})
		}
	}()

	originX := job.Coord.X * p.chunkSizeX
	originZ := job.Coord.Z * p.chunkSizeZ
	tensor := gen.LoadChunkTensor(originX, originZ, p.chunkSizeX, p.chunkSizeY, p.chunkSizeZ)

	solid, water := tm.MeshChunk(tensor, reg, nil, nil, nil)
	p.emit(Result{Coord: job.Coord, Solid: solid, Water: water})
}

func (p *Pipeline) emit(r Result) {
	select {
	case p.results <- r:
	case <-p.ctx.Done():
	}
}

// Submit enqueues a job, returning false without blocking if the queue
// is full (the caller should retry next tick rather than stall).
func (p *Pipeline) Submit(j Job) bool {
	select {
	case p.jobs <- j:
		return true
	default:
		return false
	}
}

// Drain returns every result currently available without blocking,
// meant to be called once per scheduler tick (§5's tick-boundary
// ordering guarantee) so results are applied to shared state serially.
func (p *Pipeline) Drain() []Result {
	var out []Result
	for {
		select {
		case r := <-p.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Close stops all workers and releases the queue.
func (p *Pipeline) Close() {
	p.cancel()
	close(p.jobs)
	p.wg.Wait()
}

// panicError adapts a recovered panic value into an error for Result.Err.
type panicError struct{ v interface{} }

func (e panicError) Error() string {
	if err, ok := e.v.(error); ok {
		return err.Error()
	}
	return "panic in chunk worker"
}

