package hierarchy

// Data returns the nested input form of the tree. Every node is written
// with its resolved value, radius and uncertainty, so building the result
// again yields an identical tree.
func (t *Tree) Data() Data {
	return toData(t.Root)
}

func toData(n *Node) Data {
	value, radius, uncertainty := n.Value, n.Radius, n.Uncertainty
	d := Data{Name: n.Name, Value: &value, Radius: &radius}
	if uncertainty != 0 {
		d.Uncertainty = &uncertainty
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, toData(c))
	}
	return d
}
