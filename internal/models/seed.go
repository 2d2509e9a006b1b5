package models

import (
	"net/url"
	"strings"
)

// Categories is the fixed topical grouping for the curriculum.
var Categories = []Category{
	{ID: "basics", Name: "Core Basics & Control Flow", Icon: "⚡"},
	{ID: "data-structures", Name: "Data Structures", Icon: "📦"},
	{ID: "advanced", Name: "Advanced Functions & Strings", Icon: "🔧"},
	{ID: "hashing", Name: "Hashing & Algorithms", Icon: "🔐"},
	{ID: "libraries", Name: "Numerical Libraries", Icon: "📊"},
	{ID: "specialized", Name: "Specialized Tools", Icon: "🛠️"},
}

// ValidCategories indexes Categories by ID for quick membership checks.
var ValidCategories = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c.ID] = true
	}
	return m
}()

// CategoryName returns the display name for a category ID, or the ID itself
// for user-defined categories that are not in the fixed set.
func CategoryName(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// VideoSearchURL builds the deterministic external search link for a topic.
// Custom items get the same link shape as seed items.
func VideoSearchURL(query string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return "https://www.youtube.com/results?search_query=python+" + escaped
}

func seedItem(id, category, title, searchQuery string) StudyItem {
	return StudyItem{
		ID:       id,
		Category: category,
		Title:    title,
		VideoURL: VideoSearchURL(searchQuery),
	}
}

// SeedItems is the initial curriculum used on first launch, before any saved
// state exists.
var SeedItems = []StudyItem{
	// Core Basics
	seedItem("1-1", "basics", "Numerical conversions: int(), float(), Decimal()", "numerical conversions int float decimal"),
	seedItem("1-2", "basics", "Arithmetic operators: /, //, %, round()", "arithmetic operators python"),
	seedItem("1-3", "basics", "User inputs & Formatted prints (sep, end)", "python input and print formatted"),
	seedItem("1-4", "basics", "Conditional Logic: if, elif, else", "python conditional logic"),
	seedItem("1-5", "basics", "Loops: while, for, break, continue", "python loops while for break continue"),

	// Data Structures
	seedItem("2-1", "data-structures", "Lists: append, insert, pop, sort, slicing", "python lists methods slicing"),
	seedItem("2-2", "data-structures", "Dictionaries: keys, values, items, update", "python dictionaries methods"),
	seedItem("2-3", "data-structures", "Sets: union (|), intersection, issubset", "python sets operations"),
	seedItem("2-4", "data-structures", "Tuples: Immutability and Indexing", "python tuples tutorial"),

	// Advanced Functions
	seedItem("3-1", "advanced", "Variable arguments: *args and **kwargs", "python args and kwargs"),
	seedItem("3-2", "advanced", "Advanced functions: lambda, filter, map, reduce", "python lambda filter map reduce"),
	seedItem("3-3", "advanced", "String methods: upper, lower, split, join, zfill", "python string methods"),

	// Hashing
	seedItem("4-1", "hashing", "Indices calculation: hash(element) % taille", "python hashing algorithm explained"),
	seedItem("4-2", "hashing", "Collision handling & MD5 vs SHA algorithms", "cryptographic hashing algorithms python"),

	// Numerical Libraries
	seedItem("5-1", "libraries", "NumPy: arange, linspace, zeros, eye", "numpy array generation functions"),
	seedItem("5-2", "libraries", "Linear Algebra: linalg.solve, transpose, inv", "numpy linear algebra functions"),
	seedItem("5-3", "libraries", "Pandas: Series, DataFrames, iloc/loc", "pandas dataframes loc iloc tutorial"),
	seedItem("5-4", "libraries", "Data Cleaning: isna, fillna, dropna", "pandas data cleaning missing values"),

	// Specialized Tools
	seedItem("6-1", "specialized", "Data Structures: LIFO (Stacks) & FIFO (Queues)", "python stacks and queues"),
	seedItem("6-2", "specialized", "File Handling: txt and csv files", "python read write files csv txt"),
	seedItem("6-3", "specialized", "SymPy: expand, factor, diff, integrate", "sympy tutorial symbolic math python"),
	seedItem("6-4", "specialized", "Matplotlib: plot, scatter, custom styles", "matplotlib plotting tutorial python"),
}
