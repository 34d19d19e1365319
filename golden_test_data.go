package main

// @generated by scripts/gen_golden.go

var goldenResults = map[string]string{
	"constant":   "7\n",
	"arithmetic": "7\n",
	"pair":       "(1 . 2)\n",
}
