package algorithms

import "github.com/aretw0/stepwise/pkg/domain"

// Published pseudocode, one table per algorithm. Steps reference these
// tables by index.
var (
	LinearSearchLines = domain.LineTable{
		"for i in range(n):",
		"  if arr[i] == target:",
		"    return i",
		"return -1",
	}

	BinarySearchLines = domain.LineTable{
		"low, high = 0, n - 1",
		"while low <= high:",
		"  mid = (low + high) // 2",
		"  if arr[mid] == target: return mid",
		"  elif arr[mid] < target: low = mid + 1",
		"  else: high = mid - 1",
		"return -1",
	}

	BubbleSortLines = domain.LineTable{
		"for i in range(n):",
		"  for j in range(0, n-i-1):",
		"    if arr[j] > arr[j+1]:",
		"      swap(arr[j], arr[j+1])",
		"return arr",
	}

	InsertionSortLines = domain.LineTable{
		"for i in range(1, n):",
		"  key = arr[i]",
		"  j = i - 1",
		"  while j >= 0 and arr[j] > key:",
		"    arr[j+1] = arr[j]",
		"    j -= 1",
		"  arr[j+1] = key",
		"return arr",
	}

	SelectionSortLines = domain.LineTable{
		"for i in range(n):",
		"  min_idx = i",
		"  for j in range(i+1, n):",
		"    if arr[j] < arr[min_idx]:",
		"      min_idx = j",
		"  swap(arr[i], arr[min_idx])",
		"return arr",
	}

	MergeSortLines = domain.LineTable{
		"mergeSort(low, high):",
		"  if low < high:",
		"    mid = (low + high) // 2",
		"    mergeSort(low, mid)",
		"    mergeSort(mid + 1, high)",
		"    merge(low, mid, high)",
		"return arr",
	}

	QuickSortLines = domain.LineTable{
		"quickSort(low, high):",
		"  if low < high:",
		"    pivot = arr[high]; i = low",
		"    for j in range(low, high): if arr[j] <= pivot:",
		"      swap(arr[i], arr[j]); i += 1",
		"    swap(arr[i], arr[high])",
		"    quickSort(low, i - 1); quickSort(i + 1, high)",
		"return arr",
	}

	HeapSortLines = domain.LineTable{
		"for i from n/2 - 1 down to 0: heapify(i, n)",
		"  heapify: largest of node and its children",
		"  if largest != node: swap, heapify(largest)",
		"for end from n - 1 down to 1:",
		"  swap(arr[0], arr[end])",
		"  heapify(0, end)",
		"return arr",
	}

	RadixSortLines = domain.LineTable{
		"offset = min(min(arr), 0); m = max(arr) - offset",
		"for exp = 1; m / exp > 0; exp *= 10:",
		"  stable bucket pass on digit (v - offset) / exp % 10",
		"return arr",
	}

	BFSLines = domain.LineTable{
		"queue = [start]",
		"while queue is not empty:",
		"  node = queue.pop()",
		"  mark node as visited",
		"  if node == goal: return path(node)",
		"  queue.push(unvisited neighbours of node)",
		"return no path",
	}
)
