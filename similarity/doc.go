// Package similarity scores how alike two edited passages are.
//
// Four metrics are computed over filtered word lists (see tokenizer.Words):
// term-frequency cosine, tf-idf cosine, soft cosine over word embeddings and
// the cosine between mean word embeddings. Bag-of-words metrics follow the
// usual vectorizer conventions: words are lowercased and single-letter words
// are ignored.
package similarity
