// Package instance reads and writes weighted set-cover instances.
//
// Several benchmark file layouts are understood. Each is a [Format]; the
// format for a path is chosen by [Detect] from the file name, the way the
// benchmark suites name their files:
//
//	name contains "rail"       rail (OR-Library railway crew scheduling)
//	name contains "dblp"       dblp (one line per set, weight first)
//	name contains "accidents"  fis  (frequent itemset data, unit weights)
//	extension ".json"          json
//	anything else              orlib (OR-Library scp layout)
//
// All text formats use 1-based element and set numbers; the JSON format is
// 0-based and is also what [WriteJSON] produces.
//
// # Usage
//
//	p, err := instance.Load("testdata/scp41.txt")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p.NumSets(), p.UniverseSize())
package instance
