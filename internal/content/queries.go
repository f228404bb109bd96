package content

// GROQ queries sent to the content API.
const (
	slugsQuery = `*[_type == "post" && defined(slug.current)]{
  _id,
  slug {
    current
  }
}`

	postsQuery = `*[_type == "post"] | order(_createdAt desc){
  _id,
  _createdAt,
  title,
  author->{
    name,
    image
  },
  description,
  mainImage,
  slug
}`

	postBySlugQuery = `*[_type == "post" && slug.current == $slug][0]{
  _id,
  _createdAt,
  title,
  author->{
    name,
    image
  },
  'comments': *[
    _type == "comment" &&
    post._ref == ^._id &&
    approved == true] | order(_createdAt asc),
  description,
  mainImage,
  slug,
  body
}`
)
