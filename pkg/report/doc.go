/*
Package report parses coverage summary exports and flattens them into gauge
series.

# Input

The expected input is the summary export produced by llvm-cov
(llvm-cov export -summary-only), or any document with the same shape:

	{
	    "type": "llvm.coverage.json.export",
	    "version": "2.0.1",
	    "data": [
	        {
	            "totals": {
	                "branches":       {"count": 10, "covered": 8, "notcovered": 2, "percent": 80},
	                "functions":      {"count": 4,  "covered": 4, "percent": 100},
	                "instantiations": {"count": 4,  "covered": 4, "percent": 100},
	                "lines":          {"count": 100, "covered": 80, "notcovered": 20, "percent": 80},
	                "regions":        {"count": 20, "covered": 15, "notcovered": 5, "percent": 75}
	            }
	        }
	    ]
	}

All five categories and their count, covered and percent fields are required.
notcovered is optional. Values are passed through as-is: covered is not
checked against count and percent is not range checked.

# Output

Each entry yields one gauge per statistic:

	coverage.totals.branches.count
	coverage.totals.branches.covered
	coverage.totals.branches.notcovered   (only when present)
	coverage.totals.branches.percent
	coverage.totals.functions.count
	...

Every series of a run shares the same timestamp. Entries are never merged, so
a document with two entries yields every name twice.
*/
package report
