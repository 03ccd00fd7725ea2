package vault

// RangePrm groups the parameters of LoadRange operation.
type RangePrm struct {
	// Label to list, empty label means records stored directly under the root.
	Label string
	// Start is a 1-based position of the first record in the sorted listing.
	// Values less than 1 are treated as 1.
	Start int
	// Count is the maximum number of records to return.
	Count int
	// Root to list.
	Root Root
}

// LoadRange returns payloads of the records at 1-based positions
// [Start, Start+Count-1] of the label listing sorted by key in ascending
// order. Every call lists the directory again.
//
// Missing label results in an empty listing. Records removed between
// listing and reading are skipped.
func (v *Vault) LoadRange(prm RangePrm) ([][]byte, error) {
	if v.metrics != nil {
		defer elapsed(v.metrics.AddListDuration)()
	}

	res, err := v.loadRange(prm)
	v.reportError(opList, err)

	return res, err
}

func (v *Vault) loadRange(prm RangePrm) ([][]byte, error) {
	root, dir, ok, err := v.labelDir(prm.Root, prm.Label)
	if err != nil || !ok || prm.Count <= 0 {
		return nil, err
	}

	names, err := sortedRecordNames(dir)
	if err != nil {
		return nil, err
	}

	start := prm.Start
	if start < 1 {
		start = 1
	}

	if start > len(names) {
		return nil, nil
	}

	names = names[start-1:]
	if prm.Count < len(names) {
		names = names[:prm.Count]
	}

	res := make([][]byte, 0, len(names))

	err = v.readRecords(prm.Root, root, dir, prm.Label, names, func(_ string, data []byte) error {
		res = append(res, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// AllPrm groups the parameters of LoadAll operation.
type AllPrm struct {
	// Label to list, empty label means records stored directly under the root.
	Label string
	// Root to list.
	Root Root
}

// LoadAll returns payloads of all records of the label in the file system
// enumeration order, which is not guaranteed to be sorted.
//
// Missing label results in an empty listing.
func (v *Vault) LoadAll(prm AllPrm) ([][]byte, error) {
	var res [][]byte

	err := v.Iterate(IteratePrm{
		Label: prm.Label,
		Root:  prm.Root,
		Handler: func(_ string, data []byte) error {
			res = append(res, data)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
