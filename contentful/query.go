package contentful

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const postFields = `
  slug
  title
  coverImage {
    url
  }
  date
  author {
    ... on Author {
      name
      picture {
        url
      }
    }
  }
  excerpt
  content {
    json
    links {
      assets {
        block {
          sys {
            id
          }
          url
          description
        }
      }
    }
  }
`

// Number of posts returned next to a single post.
const relatedLimit = 2

// graphQLString quotes s as a GraphQL string literal. GraphQL string escapes
// are a subset of JSON's, so a JSON-encoded string is always valid.
func graphQLString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func allPostsQuery(preview bool) string {
	return fmt.Sprintf(`query {
  postCollection(where: { slug_exists: true }, order: date_DESC, preview: %s) {
    items {%s}
  }
}`, strconv.FormatBool(preview), postFields)
}

func postQuery(slug string, preview bool) string {
	return fmt.Sprintf(`query {
  postCollection(where: { slug: %s }, preview: %s, limit: 1) {
    items {%s}
  }
}`, graphQLString(slug), strconv.FormatBool(preview), postFields)
}

func relatedPostsQuery(slug string, preview bool) string {
	return fmt.Sprintf(`query {
  postCollection(where: { slug_not_in: [%s] }, order: date_DESC, preview: %s, limit: %d) {
    items {%s}
  }
}`, graphQLString(slug), strconv.FormatBool(preview), relatedLimit, postFields)
}
