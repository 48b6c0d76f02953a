package builtins

import goruntime "runtime"

func runtimeGC() {
	goruntime.GC()
}

func heapBytes() uint64 {
	var stats goruntime.MemStats
	goruntime.ReadMemStats(&stats)
	return stats.HeapAlloc
}
