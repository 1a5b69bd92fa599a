package nfts

// FragmentProvider supplies the field selection appended to data queries.
// The compiler treats the definition as opaque text.
type FragmentProvider interface {
	FragmentName() string
	FragmentDefinition() string
}

// Fragment is a FragmentProvider backed by constant text.
type Fragment struct {
	Name       string
	Definition string
}

func (f Fragment) FragmentName() string       { return f.Name }
func (f Fragment) FragmentDefinition() string { return f.Definition }

// NFTFragment selects the fields of the marketplace NFT entity.
var NFTFragment = Fragment{
	Name: "nftFragment",
	Definition: `fragment nftFragment on NFT {
  id
  name
  image
  contractAddress
  tokenId
  category
  owner {
    address
  }
  createdAt
  updatedAt
  soldAt
  searchOrderPrice
  searchOrderCreatedAt
  parcel {
    x
    y
    data {
      description
    }
  }
  estate {
    size
    parcels {
      x
      y
    }
    data {
      description
    }
  }
  wearable {
    description
    category
    rarity
    bodyShapes
  }
  emote {
    description
    category
    rarity
    bodyShapes
    loop
  }
  ens {
    subdomain
  }
  itemBlockchainId
  issuedId
  itemType
}`,
}
