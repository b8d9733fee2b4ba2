// Package hashmem computes the hash table sizes an engine can be given for
// a share of the machine's physical memory.
//
// The engine's "hash <n>" command takes an exponent rather than a byte
// count. Each step up doubles the table, so the usable choices form a short
// list that a host can present to its user.
package hashmem

const (
	// BaseMemory is the memory in MB the engine uses besides its hash table.
	BaseMemory = 230

	// MinimumTable is the memory in MB of the smallest hash table.
	MinimumTable = 24

	// MinimumHashValue is the hash command value for MinimumTable.
	MinimumHashValue = 19

	// MaximumTable caps the table at 1GB; larger allocations tend to fail.
	MaximumTable = 1024
)

// Entry pairs a hash command value with the total engine memory it implies.
type Entry struct {
	// MemSize is the total memory the engine uses, in MB.
	MemSize int
	// HashValue is the argument for the hash command.
	HashValue int
}

// Table lists hash settings for an engine allowed to use rate (0.0 to 1.0)
// of totalMB megabytes. The smallest setting is always included.
func Table(totalMB uint64, rate float64) []Entry {
	if rate < 0 {
		rate = 0
	}

	if rate > 1 {
		rate = 1
	}

	memMax := min(int64(float64(totalMB)*rate), MaximumTable+BaseMemory)

	var entries []Entry

	mem := MinimumTable
	hash := MinimumHashValue

	for {
		entries = append(entries, Entry{MemSize: mem + BaseMemory, HashValue: hash})

		mem *= 2
		hash++

		if int64(mem+BaseMemory) > memMax {
			return entries
		}
	}
}

// Largest returns the biggest entry of Table(totalMB, rate).
func Largest(totalMB uint64, rate float64) Entry {
	entries := Table(totalMB, rate)

	return entries[len(entries)-1]
}

// SystemTable is Table applied to the machine's physical memory.
func SystemTable(rate float64) ([]Entry, error) {
	total, err := SystemMemory()
	if err != nil {
		return nil, err
	}

	return Table(total/1024/1024, rate), nil
}

// SystemLargest is Largest applied to the machine's physical memory.
func SystemLargest(rate float64) (Entry, error) {
	entries, err := SystemTable(rate)
	if err != nil {
		return Entry{}, err
	}

	return entries[len(entries)-1], nil
}
