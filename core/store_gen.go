package core

import "fmt"

func SmallGenerator(seed int64, versions int) ChangesetGenerator {
	return ChangesetGenerator{
		StoreKey:         "small",
		Seed:             seed,
		KeyMean:          8,
		KeyStdDev:        2,
		ValueSpace:       1_000_000,
		InitialSize:      1_000,
		FinalSize:        10_000,
		Versions:         versions,
		ChangePerVersion: 500,
		DeleteFraction:   0.1,
	}
}

func ChurnGenerator(seed int64, versions int) ChangesetGenerator {
	return ChangesetGenerator{
		StoreKey:         "churn",
		Seed:             seed,
		KeyMean:          24,
		KeyStdDev:        4,
		ValueSpace:       20_000,
		InitialSize:      5_000,
		FinalSize:        6_000,
		Versions:         versions,
		ChangePerVersion: 4_000,
		DeleteFraction:   0.45,
	}
}

// AscendingGenerator inserts strictly increasing values, the degenerate
// case for an unbalanced search tree.
func AscendingGenerator(seed int64, versions int) ChangesetGenerator {
	return ChangesetGenerator{
		StoreKey:         "ascending",
		Seed:             seed,
		KeyMean:          8,
		KeyStdDev:        1,
		InitialSize:      1_000,
		FinalSize:        100_000,
		Versions:         versions,
		ChangePerVersion: 100,
		DeleteFraction:   0.2,
	}
}

// Profile returns the named set of generators.
func Profile(name string, seed int64, versions int) ([]ChangesetGenerator, error) {
	switch name {
	case "small":
		return []ChangesetGenerator{SmallGenerator(seed, versions)}, nil
	case "ascending":
		return []ChangesetGenerator{AscendingGenerator(seed, versions)}, nil
	case "medium":
		return []ChangesetGenerator{
			SmallGenerator(seed, versions),
			ChurnGenerator(seed+1, versions),
			AscendingGenerator(seed+2, versions),
		}, nil
	default:
		return nil, fmt.Errorf("unknown generator profile: %s", name)
	}
}
